package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/inventory"
)

// statusTimeout matches the original client's 3-second notification.
const statusTimeout = 3 * time.Second

// requestTimeout bounds a single remote operation issued from the TUI.
const requestTimeout = 45 * time.Second

// fetchCmd runs the gateway fetch for a ticket in the background. The
// result re-enters the model through fetchDoneMsg.
func fetchCmd(gw gateway.InventoryGateway, ticket inventory.FetchTicket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		records, err := gw.FetchRecords(ctx, ticket.Kind, ticket.Period)
		return fetchDoneMsg{ticket: ticket, records: records, err: err}
	}
}

// updatePriceCmd runs the price-update command for a commit ticket.
func updatePriceCmd(gw gateway.InventoryGateway, ticket inventory.CommitTicket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := gw.UpdatePrice(ctx, ticket.RecordID, ticket.Price)
		return priceUpdatedMsg{ticket: ticket, err: err}
	}
}

// expireStatusCmd clears the status line after the notification timeout,
// unless a newer status has replaced it.
func expireStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
