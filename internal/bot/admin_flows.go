package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleetfuel/internal/numfmt"
	"fleetfuel/internal/service"
)

func (d *Dispatcher) adminNewID(in Incoming, sess *session, text string) {
	sess.ObjectID = strings.TrimSpace(text)
	sess.Step = stepNewCapacity
	d.send(in.ChatID, "Enter the tank capacity (L), a number (e.g. 300):")
}

func (d *Dispatcher) adminNewCapacity(ctx context.Context, in Incoming, sess *session, text string) {
	capacity, err := numfmt.ParseStrict(text)
	if err != nil {
		d.send(in.ChatID, msgEnterNumber)
		return
	}
	d.sessions.drop(in.UserID)

	if err := d.services.Fleet.AddObject(ctx, sess.ObjectID, capacity); err != nil {
		if errors.Is(err, service.ErrObjectAlreadyExists) {
			d.send(in.ChatID, "❌ Object "+sess.ObjectID+" already exists.")
			return
		}
		d.storeFailure(in, "add_object", err)
		return
	}
	d.sendMenu(in, fmt.Sprintf("✅ Added %s with a %s L tank", sess.ObjectID, numfmt.Hours(capacity)))
}

func (d *Dispatcher) adminDelete(ctx context.Context, in Incoming, text string) {
	d.sessions.drop(in.UserID)

	ok, err := d.services.Fleet.DeleteObject(ctx, strings.TrimSpace(text))
	if err != nil {
		d.storeFailure(in, "delete_object", err)
		return
	}
	if ok {
		d.send(in.ChatID, "🗑 Deleted.")
	} else {
		d.send(in.ChatID, "❌ Object not found.")
	}
}

// adminTargetID stores the object id and advances to the value step of a
// two-step edit workflow.
func (d *Dispatcher) adminTargetID(in Incoming, sess *session, next step, text, prompt string) {
	sess.ObjectID = strings.TrimSpace(text)
	sess.Step = next
	d.send(in.ChatID, prompt)
}

func (d *Dispatcher) adminSetCapacity(ctx context.Context, in Incoming, sess *session, text string) {
	v, err := numfmt.ParseStrict(text)
	if err != nil {
		d.send(in.ChatID, msgEnterNumber)
		return
	}
	d.sessions.drop(in.UserID)

	ok, err := d.services.Fleet.SetCapacity(ctx, sess.ObjectID, v)
	if err != nil {
		d.storeFailure(in, "set_capacity", err)
		return
	}
	d.sendUpdateResult(in, ok)
}

func (d *Dispatcher) adminSetUsage(ctx context.Context, in Incoming, sess *session, text string) {
	v, err := numfmt.ParseStrict(text)
	if err != nil {
		d.send(in.ChatID, msgEnterNumber)
		return
	}
	d.sessions.drop(in.UserID)

	ok, err := d.services.Fleet.SetUsage(ctx, sess.ObjectID, v)
	if err != nil {
		d.storeFailure(in, "set_usage", err)
		return
	}
	d.sendUpdateResult(in, ok)
}

func (d *Dispatcher) sendUpdateResult(in Incoming, found bool) {
	if found {
		d.send(in.ChatID, "✅ Updated.")
	} else {
		d.send(in.ChatID, "❌ Object not found.")
	}
}
