package cli

import "github.com/fatih/color"

// shortID trims a uuid down to its first segment for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens text for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// statusColor renders a lifecycle status with its conventional color.
func statusColor(status string) string {
	switch status {
	case "pending":
		return color.New(color.FgYellow).Sprint(status)
	case "resolved":
		return color.New(color.FgGreen).Sprint(status)
	case "timeout":
		return color.New(color.FgRed).Sprint(status)
	}
	return status
}
