package tui

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/notify"
)

const (
	notificationTTL = 5 * time.Second
	loadTimeout     = 30 * time.Second
)

// snapshotLoadedMsg carries the result of a catalog load.
type snapshotLoadedMsg struct {
	snap     catalog.Snapshot
	err      error
	duration time.Duration
}

// refreshTickMsg triggers a periodic catalog reload.
type refreshTickMsg struct{}

// notificationMsg carries a notification from the event bus into the Update
// loop.
type notificationMsg struct {
	notification notify.Notification
}

// notificationExpiredMsg re-renders the status bar once a notification ages out.
type notificationExpiredMsg struct{}

// copyDoneMsg reports a clipboard write.
type copyDoneMsg struct {
	table string
	count int
	err   error
}

// infoLoadedMsg carries database details for the info dialog.
type infoLoadedMsg struct {
	info DatabaseInfo
	err  error
}

func loadSnapshot(store catalog.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		start := time.Now()
		snap, err := catalog.Load(ctx, store)
		return snapshotLoadedMsg{snap: snap, err: err, duration: time.Since(start)}
	}
}

func scheduleRefresh(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// waitForNotification blocks until the bus delivers the next notification.
func waitForNotification(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{notification: n}
	}
}

func expireNotification() tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return notificationExpiredMsg{}
	})
}

func copyIDs(write func(string) error, table string, ids []string) tea.Cmd {
	return func() tea.Msg {
		if len(ids) == 0 {
			return copyDoneMsg{table: table}
		}
		err := write(strings.Join(ids, "\n"))
		return copyDoneMsg{table: table, count: len(ids), err: err}
	}
}

func loadInfo(fn func(context.Context) (DatabaseInfo, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		info, err := fn(ctx)
		return infoLoadedMsg{info: info, err: err}
	}
}
