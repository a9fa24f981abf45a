package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

const (
	MaxReferenceLength  = 50
	MaxCartNumberLength = 50
)

// Order is the aggregate root of the fulfillment lifecycle. It tracks one
// customer order as it is prepared, controlled and packed in the warehouse.
//
// Order maintains these invariants:
//   - status decides which stage fields are populated: a stage that has not
//     been reached has neither actor nor timestamp
//   - createdAt <= preparedAt <= controlledAt <= packedAt, and completedAt
//     equals packedAt once packed
//   - actor and timestamp fields are only written by Prepare, Control and Pack,
//     each exactly once
//   - reference never changes after creation
//
// Actor references are soft: an actor whose identity was removed reads as nil
// while the stage timestamp stays in place.
type Order struct {
	id         kernel.UUID
	reference  string
	cartNumber string
	lineCount  *int
	status     Status

	creator    *kernel.UUID
	preparer   *kernel.UUID
	controller *kernel.UUID
	packer     *kernel.UUID

	createdAt    time.Time
	preparedAt   *time.Time
	controlledAt *time.Time
	packedAt     *time.Time
	completedAt  *time.Time

	isConstructed bool
}

// NewOrder registers a new order in the Created stage on behalf of creator.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "CMD-0001", "C-12", caller.ID(), clock.Now())
//	if err != nil {
//	    return nil, err
//	}
func NewOrder(id kernel.UUID, reference, cartNumber string, creator kernel.UUID, now time.Time) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		o.setCartNumber(cartNumber),
		creatorRequired(creator),
		timeRequired("createdAt", now),
	); err != nil {
		return nil, err
	}

	o.creator = &creator
	o.createdAt = now
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) Reference() string        { return o.reference }
func (o *Order) CartNumber() string       { return o.cartNumber }
func (o *Order) LineCount() *int          { return copyInt(o.lineCount) }
func (o *Order) Status() Status           { return o.status }
func (o *Order) Creator() *kernel.UUID    { return copyUUID(o.creator) }
func (o *Order) Preparer() *kernel.UUID   { return copyUUID(o.preparer) }
func (o *Order) Controller() *kernel.UUID { return copyUUID(o.controller) }
func (o *Order) Packer() *kernel.UUID     { return copyUUID(o.packer) }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) PreparedAt() *time.Time   { return copyTime(o.preparedAt) }
func (o *Order) ControlledAt() *time.Time { return copyTime(o.controlledAt) }
func (o *Order) PackedAt() *time.Time     { return copyTime(o.packedAt) }
func (o *Order) CompletedAt() *time.Time  { return copyTime(o.completedAt) }

// Prepare records that actor prepared the order. lineCount is optional but must
// be positive when given. The order must be Created.
func (o *Order) Prepare(actor kernel.UUID, lineCount *int, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.Prepare()
	if err != nil {
		return err
	}
	if err = errors.Join(actorRequired("preparer", actor), validateLineCount(lineCount)); err != nil {
		return err
	}

	stamp := notBefore(now, o.createdAt)
	o.status = next
	o.preparer = &actor
	o.preparedAt = &stamp
	if lineCount != nil {
		o.lineCount = copyInt(lineCount)
	}
	return nil
}

// Control records that actor checked the prepared order. The order must be Prepared.
func (o *Order) Control(actor kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.Control()
	if err != nil {
		return err
	}
	if err = actorRequired("controller", actor); err != nil {
		return err
	}

	stamp := notBefore(now, *o.preparedAt)
	o.status = next
	o.controller = &actor
	o.controlledAt = &stamp
	return nil
}

// Pack records that actor packed the order, which ends the lifecycle.
// completedAt is set to the same instant as packedAt. The order must be Controlled.
func (o *Order) Pack(actor kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	next, err := o.status.Pack()
	if err != nil {
		return err
	}
	if err = actorRequired("packer", actor); err != nil {
		return err
	}

	stamp := notBefore(now, *o.controlledAt)
	completed := stamp
	o.status = next
	o.packer = &actor
	o.packedAt = &stamp
	o.completedAt = &completed
	return nil
}

// Changes describes an administrative edit. Nil fields are left untouched.
type Changes struct {
	Reference  *string
	CartNumber *string
	Status     *Status
	LineCount  *int
}

// Edit applies an administrative correction. Actor and timestamp fields are
// never touched. Reference and Status are accepted only when they repeat the
// current value: the reference is immutable and the status only moves through
// Prepare, Control and Pack. Nothing changes when any field is rejected.
func (o *Order) Edit(c Changes) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if c.Reference != nil && strings.TrimSpace(*c.Reference) != o.reference {
		return errs.NewValueIsInvalidErrorWithCause("reference", errors.New("reference is immutable"))
	}
	if c.Status != nil && *c.Status != o.status {
		return errs.NewInvalidStateTransitionError(
			"order", "edited to "+c.Status.String(), o.status.String(), "")
	}

	cartNumber := o.cartNumber
	if c.CartNumber != nil {
		cartNumber = strings.TrimSpace(*c.CartNumber)
		if err := validateCartNumber(cartNumber); err != nil {
			return err
		}
	}
	if err := validateLineCount(c.LineCount); err != nil {
		return err
	}

	o.cartNumber = cartNumber
	if c.LineCount != nil {
		o.lineCount = copyInt(c.LineCount)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	if len(reference) > MaxReferenceLength {
		return errs.NewValueIsOutOfRangeError("reference length", len(reference), 1, MaxReferenceLength)
	}
	o.reference = reference
	return nil
}

func (o *Order) setCartNumber(cartNumber string) error {
	cartNumber = strings.TrimSpace(cartNumber)
	if err := validateCartNumber(cartNumber); err != nil {
		return err
	}
	o.cartNumber = cartNumber
	return nil
}

func validateCartNumber(cartNumber string) error {
	if cartNumber == "" {
		return errs.NewValueIsRequiredError("cartNumber")
	}
	if len(cartNumber) > MaxCartNumberLength {
		return errs.NewValueIsOutOfRangeError("cartNumber length", len(cartNumber), 1, MaxCartNumberLength)
	}
	return nil
}

func validateLineCount(lineCount *int) error {
	if lineCount != nil && *lineCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lineCount",
			fmt.Errorf("%d is not a positive integer", *lineCount))
	}
	return nil
}

func creatorRequired(creator kernel.UUID) error {
	return actorRequired("creator", creator)
}

func actorRequired(name string, actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}

func timeRequired(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// notBefore clamps a stage time so a clock step backwards never breaks ordering.
func notBefore(now, previous time.Time) time.Time {
	if now.Before(previous) {
		return previous
	}
	return now
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
