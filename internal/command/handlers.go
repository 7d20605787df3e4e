package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"taskbot/internal/store"
	"taskbot/pkg/events"
)

const dateLayout = "2006-01-02"

// Fixed user-facing replies. Validation and out-of-range outcomes map to
// these; only storage faults leave the handler as errors.
const (
	msgUsage = "Hello! I manage your to-do list.\n" +
		"/add <description> <start:YYYY-MM-DD> <end:YYYY-MM-DD> - add a task\n" +
		"/list - show your tasks\n" +
		"/delete <number> - delete a task\n" +
		"/overdue - show overdue tasks\n" +
		"/today - show tasks for today\n" +
		"/week - show tasks for the coming week\n" +
		"/month - show tasks for the coming month"
	msgAddArgs    = "Please enter a description, a start date and an end date (YYYY-MM-DD)."
	msgBadDate    = "Please enter the dates in YYYY-MM-DD format."
	msgListEmpty  = "Your to-do list is empty."
	msgBadNumber  = "Please enter a valid task number."
	msgOutOfRange = "Invalid task number."
	msgNoOverdue  = "No overdue tasks."
	msgNoToday    = "No tasks for today."
	msgNoWeek     = "No tasks for the coming week."
	msgNoMonth    = "No tasks for the coming month."
	headerList    = "Your to-do list:"
	headerOverdue = "Overdue tasks:"
	headerToday   = "Tasks for today:"
	headerWeek    = "Tasks for the coming week:"
	headerMonth   = "Tasks for the coming month:"
)

// Handlers turns tokenized commands into store calls and response text.
type Handlers struct {
	st  store.Store
	pub events.Publisher
}

func New(st store.Store, pub events.Publisher) *Handlers {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Handlers{st: st, pub: pub}
}

func (h *Handlers) Start(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	return msgUsage, nil
}

// Add accepts a multi-word description: the last two tokens are the dates,
// everything before them joins into the description.
func (h *Handlers) Add(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	if len(args) < 3 {
		return msgAddArgs, nil
	}
	description := strings.Join(args[:len(args)-2], " ")
	start, err := time.ParseInLocation(dateLayout, args[len(args)-2], time.Local)
	if err != nil {
		return msgBadDate, nil
	}
	end, err := time.ParseInLocation(dateLayout, args[len(args)-1], time.Local)
	if err != nil {
		return msgBadDate, nil
	}
	t, err := h.st.Create(ctx, userID, description, start, end)
	if err != nil {
		return "", err
	}
	h.publish("task.created", t)
	return fmt.Sprintf("Task added: %s", t), nil
}

func (h *Handlers) List(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	tasks, err := h.st.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return msgListEmpty, nil
	}
	return enumerate(headerList, tasks), nil
}

func (h *Handlers) Delete(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	if len(args) < 1 {
		return msgBadNumber, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return msgBadNumber, nil
	}
	t, err := h.st.DeleteNth(ctx, userID, n)
	if err == store.ErrOutOfRange {
		return msgOutOfRange, nil
	}
	if err != nil {
		return "", err
	}
	h.publish("task.deleted", t)
	return fmt.Sprintf("Task deleted: %s", t), nil
}

func (h *Handlers) Overdue(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	tasks, err := h.st.ListOverdue(ctx, userID, now)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return msgNoOverdue, nil
	}
	return enumerate(headerOverdue, tasks), nil
}

func (h *Handlers) Today(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	return h.window(ctx, userID, now, 1, headerToday, msgNoToday)
}

func (h *Handlers) Week(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	return h.window(ctx, userID, now, 7, headerWeek, msgNoWeek)
}

func (h *Handlers) Month(ctx context.Context, userID int64, args []string, now time.Time) (string, error) {
	return h.window(ctx, userID, now, 30, headerMonth, msgNoMonth)
}

// window lists tasks whose interval covers the next `days` calendar days.
func (h *Handlers) window(ctx context.Context, userID int64, now time.Time, days int, header, empty string) (string, error) {
	start := startOfDay(now)
	end := endOfDay(start.AddDate(0, 0, days-1))
	tasks, err := h.st.ListInRange(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return empty, nil
	}
	return enumerate(header, tasks), nil
}

func (h *Handlers) publish(topic string, t store.Task) {
	payload, _ := json.Marshal(map[string]any{"id": t.ID, "user_id": t.UserID})
	if err := h.pub.Publish(topic, payload); err != nil {
		log.Printf("publish %s: %v", topic, err)
	}
}

// ---- helpers ----

func enumerate(header string, tasks []store.Task) string {
	var b strings.Builder
	b.WriteString(header)
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t)
	}
	return b.String()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
