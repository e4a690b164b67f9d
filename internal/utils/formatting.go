package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAddress truncates an address for display purposes
func FormatAddress(address string, prefixLen, suffixLen int) string {
	if len(address) <= prefixLen+suffixLen {
		return address
	}

	return address[:prefixLen] + "..." + address[len(address)-suffixLen:]
}

// FormatAmount renders a display-unit amount with at most maxPlaces decimal
// places, trimming trailing zeros.
func FormatAmount(amount decimal.Decimal, maxPlaces int32) string {
	rounded := amount.Round(maxPlaces)
	if rounded.Equal(rounded.Truncate(0)) {
		return rounded.Truncate(0).String()
	}
	return rounded.String()
}

// FormatBalance formats a balance with its denom symbol
func FormatBalance(amount decimal.Decimal, symbol string) string {
	return fmt.Sprintf("%s %s", FormatAmount(amount, 6), symbol)
}

// FormatTransactionID formats a transaction hash for display
func FormatTransactionID(txID string) string {
	if len(txID) <= 16 {
		return txID
	}
	return txID[:8] + "..." + txID[len(txID)-8:]
}

// TruncateString truncates a string to a maximum length with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// FormatStepIndicator creates a step indicator string
func FormatStepIndicator(currentStep, totalSteps int, stepNames []string) string {
	var result strings.Builder

	for i := 0; i < totalSteps; i++ {
		if i > 0 {
			result.WriteString(" > ")
		}

		stepName := fmt.Sprintf("%d", i+1)
		if i < len(stepNames) {
			stepName = stepNames[i]
		}

		if i == currentStep {
			result.WriteString("[" + stepName + "]")
		} else if i < currentStep {
			result.WriteString("✓")
		} else {
			result.WriteString(stepName)
		}
	}

	return result.String()
}

// FormatLoadingText creates animated loading text
func FormatLoadingText(baseText string, frame int) string {
	dots := []string{"", ".", "..", "..."}
	return baseText + dots[frame%len(dots)]
}

// FormatTimeAgo formats a time as "X ago" string
func FormatTimeAgo(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", minutes)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
