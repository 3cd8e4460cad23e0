package bot

import (
	"context"
	"errors"
	"strings"

	"fleetfuel/internal/logger"
	"fleetfuel/internal/service"
)

// User-facing messages shared across flows.
const (
	msgGreeting     = "Hi 👋 Choose an action:"
	msgCancelled    = "❌ Cancelled."
	msgNoPermission = "❌ You don't have permission for this action."
	msgStoreFailure = "⚠️ Something went wrong. Please try again or /start"
	msgChooseAction = "Choose an action from the keyboard, or /start"
	msgEnterNumber  = "Please enter a number (e.g. 735.4). Try again:"
)

// Dispatcher drives the conversation state machine: it routes incoming chat
// updates, collects workflow inputs step by step, and calls the services at
// the terminal transitions. Report commands bypass the state machine.
type Dispatcher struct {
	services *service.Service
	sender   Sender
	admins   map[int64]struct{}
	sessions *sessionStore
	log      *logger.Logger
}

func NewDispatcher(services *service.Service, sender Sender, adminIDs []int64, log *logger.Logger) *Dispatcher {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Dispatcher{
		services: services,
		sender:   sender,
		admins:   admins,
		sessions: newSessionStore(),
		log:      log,
	}
}

// SetSender attaches the outbound transport. The dispatcher is constructed
// before the chat client connects, so the sender arrives late; it must be
// set before the first update.
func (d *Dispatcher) SetSender(s Sender) {
	d.sender = s
}

func (d *Dispatcher) isAdmin(userID int64) bool {
	_, ok := d.admins[userID]
	return ok
}

// HandleUpdate processes one update. Every failure is recovered here: the
// user always gets a message, and an unhandled panic never escapes to the
// transport loop.
func (d *Dispatcher) HandleUpdate(ctx context.Context, in Incoming) {
	defer func() {
		if r := recover(); r != nil {
			if d.log != nil {
				d.log.Errorw("update_handler_panic", "panic", r, "user_id", in.UserID)
			}
			d.sessions.drop(in.UserID)
			_ = d.sender.SendMessage(in.ChatID, msgStoreFailure)
		}
	}()
	if d.log != nil {
		d.log.Debugw("update", "user_id", in.UserID, "text", in.Text, "callback", in.CallbackData)
	}

	if in.CallbackData != "" {
		d.handleCallback(ctx, in)
		return
	}
	d.handleText(ctx, in)
}

func (d *Dispatcher) handleText(ctx context.Context, in Incoming) {
	text := strings.TrimSpace(in.Text)

	switch text {
	case "/start":
		d.sessions.drop(in.UserID)
		d.sendMenu(in, msgGreeting)
		return
	case "/cancel", btnCancel:
		d.sessions.drop(in.UserID)
		d.sendMenu(in, msgCancelled)
		return
	case btnNewReading:
		d.startNewReading(ctx, in)
		return
	case btnFleetReport:
		d.fleetReport(ctx, in)
		return
	case btnSingleReport:
		d.startSingleReport(ctx, in)
		return
	case btnShortage:
		d.shortageReport(ctx, in)
		return
	case btnAddObject:
		d.startAdminFlow(in, flowAddObject, stepNewID, "Enter the new object ID (e.g. US0007):")
		return
	case btnDeleteObject:
		d.startAdminFlow(in, flowDeleteObject, stepDeleteID, "Enter the object ID to delete:")
		return
	case btnSetCapacity:
		d.startAdminFlow(in, flowSetCapacity, stepCapacityID, "Enter the object ID:")
		return
	case btnSetUsage:
		d.startAdminFlow(in, flowSetUsage, stepUsageID, "Enter the object ID to change the usage rate (L/h):")
		return
	}

	if sess := d.sessions.get(in.UserID); sess != nil {
		d.continueFlow(ctx, in, sess, text)
		return
	}
	d.send(in.ChatID, msgChooseAction)
}

// continueFlow feeds free-text input into the active workflow step.
func (d *Dispatcher) continueFlow(ctx context.Context, in Incoming, sess *session, text string) {
	switch sess.Step {
	case stepObjectID:
		d.readingObjectID(in, sess, text)
	case stepHours:
		d.readingHours(ctx, in, sess, text)
	case stepFuelAmount:
		d.readingFuelAmount(in, sess, text)
	case stepFullTankChoice:
		// Free text while a button answer is expected: re-prompt the choice.
		d.askFullTank(in)
	case stepNewID:
		d.adminNewID(in, sess, text)
	case stepNewCapacity:
		d.adminNewCapacity(ctx, in, sess, text)
	case stepDeleteID:
		d.adminDelete(ctx, in, text)
	case stepCapacityID:
		d.adminTargetID(in, sess, stepCapacityValue, text, "Enter the new tank capacity (L), a number:")
	case stepCapacityValue:
		d.adminSetCapacity(ctx, in, sess, text)
	case stepUsageID:
		d.adminTargetID(in, sess, stepUsageValue, text, "Enter the new fuel usage (L/h), a number:")
	case stepUsageValue:
		d.adminSetUsage(ctx, in, sess, text)
	case stepReportID:
		d.singleReport(ctx, in, text)
	default:
		d.sessions.drop(in.UserID)
		d.send(in.ChatID, msgChooseAction)
	}
}

// startAdminFlow gates an admin workflow. A failed check ends the workflow
// before any state is entered.
func (d *Dispatcher) startAdminFlow(in Incoming, f flow, s step, prompt string) {
	if !d.isAdmin(in.UserID) {
		d.send(in.ChatID, msgNoPermission)
		return
	}
	d.sessions.put(in.UserID, &session{Flow: f, Step: s})
	d.send(in.ChatID, prompt)
}

// storeFailure handles an unexpected store error: log with detail, apologize
// generically, discard the session so it is never left inconsistent.
func (d *Dispatcher) storeFailure(in Incoming, op string, err error) {
	if d.log != nil {
		d.log.Errorw("store_call_failed", "op", op, "err", err, "user_id", in.UserID)
	}
	d.sessions.drop(in.UserID)
	d.send(in.ChatID, msgStoreFailure)
}

func (d *Dispatcher) send(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageLen) {
		if err := d.sender.SendMessage(chatID, part); err != nil {
			if d.log != nil {
				d.log.Errorw("send_failed", "err", err, "chat_id", chatID)
			}
			return
		}
	}
}

func (d *Dispatcher) sendMenu(in Incoming, text string) {
	if err := d.sender.SendMenu(in.ChatID, text, mainKeyboard(d.isAdmin(in.UserID))); err != nil && d.log != nil {
		d.log.Errorw("send_menu_failed", "err", err, "chat_id", in.ChatID)
	}
}

// fleetReport lists every object in store order.
func (d *Dispatcher) fleetReport(ctx context.Context, in Incoming) {
	rows, err := d.services.Reports.Fleet(ctx)
	if err != nil {
		d.storeFailure(in, "fleet_report", err)
		return
	}
	if len(rows) == 0 {
		d.send(in.ChatID, "⚠️ No data.")
		return
	}
	d.send(in.ChatID, renderFleetReport(rows))
}

func (d *Dispatcher) shortageReport(ctx context.Context, in Incoming) {
	rep, err := d.services.Reports.Shortage(ctx)
	if err != nil {
		d.storeFailure(in, "shortage_report", err)
		return
	}
	d.send(in.ChatID, renderShortage(rep))
}

// startSingleReport opens the one-step report workflow.
func (d *Dispatcher) startSingleReport(ctx context.Context, in Incoming) {
	ids, err := d.services.Fleet.ListObjectIDs(ctx)
	if err != nil {
		d.storeFailure(in, "list_objects", err)
		return
	}
	if len(ids) == 0 {
		d.send(in.ChatID, "⚠️ The 'Objects' sheet is empty.")
		return
	}
	d.sessions.put(in.UserID, &session{Flow: flowSingleReport, Step: stepReportID})
	d.send(in.ChatID, "Enter the object ID for the report:\nAvailable: "+strings.Join(ids, ", "))
}

func (d *Dispatcher) singleReport(ctx context.Context, in Incoming, text string) {
	d.sessions.drop(in.UserID)
	rep, err := d.services.Reports.Single(ctx, text)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			d.send(in.ChatID, "⚠️ Object "+strings.TrimSpace(text)+" not found.")
			return
		}
		d.storeFailure(in, "single_report", err)
		return
	}
	d.send(in.ChatID, renderObjectLines(*rep))
}
