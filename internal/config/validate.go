package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("auth.session_ttl must be >= 0 (got %v)", c.Auth.SessionTTL)
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("auth.cookie_name must not be empty")
	}

	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	if c.Storage.LockWait <= 0 {
		return fmt.Errorf("storage.lock_wait must be > 0 (got %v)", c.Storage.LockWait)
	}

	if c.Payroll.HourlyRate < 0 {
		return fmt.Errorf("payroll.hourly_rate must be >= 0 (got %v)", c.Payroll.HourlyRate)
	}

	if c.Tasks.OverdueAfter <= 0 {
		return fmt.Errorf("tasks.overdue_after must be > 0 (got %v)", c.Tasks.OverdueAfter)
	}

	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("inventory.low_stock_threshold must be >= 0 (got %d)", c.Inventory.LowStockThreshold)
	}
	if c.Inventory.BorrowOverdue <= 0 {
		return fmt.Errorf("inventory.borrow_overdue must be > 0 (got %v)", c.Inventory.BorrowOverdue)
	}

	return nil
}
