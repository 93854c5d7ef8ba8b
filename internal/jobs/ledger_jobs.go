package jobs

import (
	"context"
	"time"

	"karrirconnect-backend/internal/logger"
)

// ReconcileLedgerBalances compares each company's stored balance against the
// sum of its completed transaction deltas and logs every mismatch. It never
// writes; drift means a bug and needs a human decision, not an automatic fix.
func (jr *JobRunner) ReconcileLedgerBalances() {
	jr.runWithRecovery("ReconcileLedgerBalances", func() {
		ctx := context.Background()

		query := `SELECT c.id, c.name, c.point_balance,
		                 COALESCE(SUM(pt.points) FILTER (WHERE pt.status = 'COMPLETED'), 0)
		          FROM companies c
		          LEFT JOIN point_transactions pt ON pt.company_id = c.id
		          GROUP BY c.id, c.name, c.point_balance`
		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to load balances for reconciliation", "error", err)
			return
		}
		defer rows.Close()

		checked, mismatched := 0, 0
		for rows.Next() {
			var companyID int32
			var name string
			var stored, derived int32
			if err := rows.Scan(&companyID, &name, &stored, &derived); err != nil {
				logger.Error("Failed to scan reconciliation row", "error", err)
				return
			}
			checked++
			if stored != derived {
				mismatched++
				logger.Error("Ledger balance mismatch",
					"company_id", companyID,
					"company_name", name,
					"stored_balance", stored,
					"derived_balance", derived)
			}
		}
		if err := rows.Err(); err != nil {
			logger.Error("Failed reading reconciliation rows", "error", err)
			return
		}

		logger.Info("Ledger reconciliation completed",
			"companies_checked", checked,
			"mismatches", mismatched)
	})
}

// FailStalePurchases marks pending purchases older than the configured age
// as FAILED so abandoned checkouts cannot be confirmed later.
func (jr *JobRunner) FailStalePurchases() {
	jr.runWithRecovery("FailStalePurchases", func() {
		ctx := context.Background()

		cutoff := time.Now().Add(-time.Duration(jr.config.Points.StalePurchaseAgeHours) * time.Hour)
		stale, err := jr.store.LedgerRepository.ListStalePendingPurchases(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending purchases", "error", err)
			return
		}

		failed := 0
		for _, purchase := range stale {
			ok, err := jr.store.LedgerRepository.FailPurchase(ctx, purchase.ID)
			if err != nil {
				logger.Error("Failed to fail stale purchase",
					"transaction_id", purchase.ID,
					"company_id", purchase.CompanyID,
					"error", err)
				continue
			}
			// A concurrent gateway callback may have settled it first.
			if ok {
				failed++
			}
		}

		logger.Info("Stale purchase sweep completed",
			"cutoff", cutoff.Format(time.RFC3339),
			"candidates", len(stale),
			"failed", failed)
	})
}

// ExpireInvitations moves pending invitations past the configured age to
// EXPIRED. The point consumed at send time stays consumed; expiry only
// clears the duplicate-invitation guard for that candidate.
func (jr *JobRunner) ExpireInvitations() {
	jr.runWithRecovery("ExpireInvitations", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Points.InvitationExpiryDays)
		expired, err := jr.store.InvitationRepository.ExpireBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire invitations", "error", err)
			return
		}

		logger.Info("Invitation expiry sweep completed",
			"cutoff", cutoff.Format(time.RFC3339),
			"expired", expired)
	})
}
