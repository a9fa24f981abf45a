package queries

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrStageQueueQueryIsNotConstructed = errors.New("StageQueueQuery must be created via NewStageQueueQuery")

// Stage names a work queue.
type Stage string

const (
	PreparationStage Stage = "preparation"
	ControlStage     Stage = "control"
	PackingStage     Stage = "packing"
)

type stageQueue struct {
	status  order.Status
	ordered string
}

// stageQueues maps each queue to the status waiting in it and the timestamp
// that orders it, newest first.
var stageQueues = map[Stage]stageQueue{
	PreparationStage: {status: order.Created, ordered: "created_at"},
	ControlStage:     {status: order.Prepared, ordered: "prepared_at"},
	PackingStage:     {status: order.Controlled, ordered: "controlled_at"},
}

// StageQueueQuery lists the orders waiting for one stage.
type StageQueueQuery struct {
	caller      identity.Caller
	stage       Stage
	period      period.Params
	creatorOnly bool
	page        Page
	guard       guard.ConstructorGuard
}

func NewStageQueueQuery(
	caller identity.Caller,
	stage string,
	p period.Params,
	creatorOnly bool,
	page Page,
) (StageQueueQuery, error) {
	if err := caller.Validate(); err != nil {
		return StageQueueQuery{}, err
	}
	s := Stage(strings.ToLower(strings.TrimSpace(stage)))
	if _, ok := stageQueues[s]; !ok {
		return StageQueueQuery{}, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a queue", stage))
	}
	return StageQueueQuery{
		caller:      caller,
		stage:       s,
		period:      p,
		creatorOnly: creatorOnly,
		page:        NewPage(page.Number, page.Size),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q StageQueueQuery) Stage() Stage { return q.stage }

func (q StageQueueQuery) Validate() error {
	return q.guard.Validate(ErrStageQueueQueryIsNotConstructed)
}
