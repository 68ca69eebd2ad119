package util

import (
	"log"
	"time"

	"umkmotion-otp/repository"
)

// StartOtpSweeper periodically evicts expired, never-verified OTP records.
// Hygiene only: correctness comes from the lazy expiry check at verify time.
func StartOtpSweeper(repo repository.OtpRepository, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := repo.DeleteExpired(); err != nil {
				log.Printf("OTP sweep failed: %v", err)
			}
		}
	}()
}
