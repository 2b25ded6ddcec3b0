package utils

import (
	"log"

	"lotuslight/config"
	"lotuslight/database"
	"lotuslight/services"

	"github.com/robfig/cron/v3"
)

// InitializeRecoveryScheduler sets up the settlement recovery sweep. It
// completes settlements that crashed after the payment record was written
// but before the enrollment record and counters landed.
func InitializeRecoveryScheduler() {
	log.Println("[RECOVERY-SWEEP] Initializing settlement recovery scheduler...")

	c := cron.New()

	c.AddFunc(config.AppConfig.RecoverySweepCron, func() {
		RunRecoverySweep()
	})

	c.Start()
	log.Printf("[RECOVERY-SWEEP] Scheduler started with schedule %q", config.AppConfig.RecoverySweepCron)
}

// RunRecoverySweep runs one pass of the recovery sweep
func RunRecoverySweep() {
	settler := services.NewSettler(database.Database.Db, nil)
	settler.Currency = config.AppConfig.PaymentCurrency

	completed, err := settler.SweepUnfinished()
	if err != nil {
		log.Printf("[RECOVERY-SWEEP] Error scanning for unfinished settlements: %v", err)
		return
	}
	if completed > 0 {
		log.Printf("[RECOVERY-SWEEP] Completed %d unfinished settlement(s)", completed)
	}
}
