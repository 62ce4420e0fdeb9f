package cachekeys

// DashboardSummary keys the cached daily summary by calendar date
// (YYYY-MM-DD). Every mutation that can move the counts deletes the key
// for the affected date.
func DashboardSummary(date string) string {
	return "dashboard:summary:" + date
}
