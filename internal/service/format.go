package service

import (
	"fmt"
	"strings"
	"time"

	"splitbridge/internal/calculator"
	"splitbridge/internal/models"
)

// Chat output layouts. Omi renders markdown, so messages lean on bold
// markers and bullet lines.
const (
	dateLong    = "January 02, 2006"
	dateShort   = "Jan 02, 2006"
	commentTime = "Jan 02 at 03:04 PM"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
}

func currencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code + " "
}

func createMessage(description, amount string, friends []models.Friend, group *models.Group, currency, share string, date time.Time) string {
	names := make([]string, 0, len(friends))
	for _, f := range friends {
		names = append(names, f.FullName())
	}
	sym := currencySymbol(currency)

	parts := []string{
		"**Expense Created!**",
		"",
		fmt.Sprintf("**%s** - %s%s", description, sym, amount),
		fmt.Sprintf("Split with: %s", strings.Join(names, ", ")),
		fmt.Sprintf("Each person owes: %s%s", sym, share),
	}
	if group != nil {
		parts = append(parts, fmt.Sprintf("Group: %s", group.Name))
	}
	parts = append(parts, fmt.Sprintf("Date: %s", date.Format(dateLong)))
	return strings.Join(parts, "\n")
}

func friendsMessage(friends []models.Friend) string {
	parts := []string{fmt.Sprintf("**Your Splitwise Friends (%d)**", len(friends)), ""}
	for i, f := range friends {
		line := fmt.Sprintf("%d. %s", i+1, f.FullName())
		if f.Email != "" {
			line += fmt.Sprintf(" (%s)", f.Email)
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

func expensesMessage(expenses []models.Expense) string {
	parts := []string{fmt.Sprintf("**Recent Expenses (%d)**", len(expenses)), ""}
	for _, e := range expenses {
		desc := e.Description
		if desc == "" {
			desc = "No description"
		}
		currency := e.CurrencyCode
		if currency == "" {
			currency = "USD"
		}
		parts = append(parts, fmt.Sprintf("• **%s** - %s %s (%s) [ID: %d]",
			desc, currency, e.Cost, e.Date.Format(dateShort), e.ID))
	}
	return strings.Join(parts, "\n")
}

func detailsMessage(e *models.Expense) string {
	desc := e.Description
	if desc == "" {
		desc = "Expense"
	}
	currency := e.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	parts := []string{
		fmt.Sprintf("**%s**", desc),
		"",
		fmt.Sprintf("**Amount:** %s %s", currency, e.Cost),
		fmt.Sprintf("**Date:** %s", e.Date.Format(dateLong)),
		"",
	}
	if len(e.Users) > 0 {
		parts = append(parts, "**Participants:**")
		for _, u := range e.Users {
			paid := u.PaidShare
			if paid == "" {
				paid = "0"
			}
			owed := u.OwedShare
			if owed == "" {
				owed = "0"
			}
			parts = append(parts, fmt.Sprintf("• %s: paid %s %s, owes %s %s",
				u.FullName(), currency, paid, currency, owed))
		}
		var creditors []string
		for _, b := range calculator.NetBalances(e.Users) {
			if b.Net.IsPositive() {
				creditors = append(creditors, fmt.Sprintf("%s is owed %s %s", b.Name, currency, b.Net.StringFixed(2)))
			}
		}
		if len(creditors) > 0 {
			parts = append(parts, "")
			parts = append(parts, creditors...)
		}
	}
	if e.GroupID != 0 {
		parts = append(parts, fmt.Sprintf("\n**Group ID:** %d", e.GroupID))
	}
	return strings.Join(parts, "\n")
}

func updateMessage(updates []string) string {
	parts := append([]string{"**Expense Updated**", ""}, updates...)
	return strings.Join(parts, "\n")
}

func deleteMessage(description, cost string) string {
	return fmt.Sprintf("**Expense Deleted**\n\nDeleted: %s ($%s)", description, cost)
}

func commentsMessage(description string, comments []models.Comment) string {
	if len(comments) == 0 {
		return fmt.Sprintf("**%s**\n\nNo comments on this expense.", description)
	}
	parts := []string{fmt.Sprintf("**Comments on: %s**", description), ""}
	for _, c := range comments {
		author := c.AuthorName
		if author == "" {
			author = "Someone"
		}
		if c.CreatedAt.IsZero() {
			parts = append(parts, fmt.Sprintf("**%s**:\n%s\n", author, c.Content))
		} else {
			parts = append(parts, fmt.Sprintf("**%s** (%s):\n%s\n", author, c.CreatedAt.Format(commentTime), c.Content))
		}
	}
	return strings.Join(parts, "\n")
}

func addCommentMessage(text string) string {
	return fmt.Sprintf("**Comment Added**\n\n\"%s\"", text)
}
