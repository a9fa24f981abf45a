package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrder struct {
	Reference  string `json:"reference"`
	CartNumber string `json:"cartNumber"`
}

type OrderChanges struct {
	Reference  *string `json:"reference"`
	CartNumber *string `json:"cartNumber"`
	Status     *string `json:"status"`
	LineCount  *int    `json:"lineCount"`
}

type PrepareRequest struct {
	LineCount *int `json:"lineCount"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type BulkDeleteFilterRequest struct {
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

type NewUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type ReleasedResponse struct {
	Released int64 `json:"released"`
}

type Durations struct {
	Preparation *float64 `json:"preparation"`
	Control     *float64 `json:"control"`
	Packing     *float64 `json:"packing"`
	Total       *float64 `json:"total"`
}

type Order struct {
	ID           string     `json:"id"`
	Reference    string     `json:"reference"`
	CartNumber   string     `json:"cartNumber"`
	LineCount    *int       `json:"lineCount"`
	Status       string     `json:"status"`
	CreatorID    *string    `json:"creatorId"`
	PreparerID   *string    `json:"preparerId"`
	ControllerID *string    `json:"controllerId"`
	PackerID     *string    `json:"packerId"`
	CreatedAt    time.Time  `json:"createdAt"`
	PreparedAt   *time.Time `json:"preparedAt"`
	ControlledAt *time.Time `json:"controlledAt"`
	PackedAt     *time.Time `json:"packedAt"`
	CompletedAt  *time.Time `json:"completedAt"`
	Durations    Durations  `json:"durations"`
}

type OrderPage struct {
	Results    []Order `json:"results"`
	TotalCount int64   `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type Window struct {
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
	Label    string     `json:"label"`
	Fallback bool       `json:"fallback"`
	Reason   string     `json:"reason,omitempty"`
}

type Distribution struct {
	ByStatus   map[string]int64 `json:"byStatus"`
	Total      int64            `json:"total"`
	Completed  int64            `json:"completed"`
	InProgress int64            `json:"inProgress"`
}

type WindowCounts struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"inProgress"`
}

type GrowthRates struct {
	Total      float64 `json:"total"`
	Completed  float64 `json:"completed"`
	InProgress float64 `json:"inProgress"`
}

type Growth struct {
	Current       WindowCounts `json:"current"`
	PreviousDay   WindowCounts `json:"previousDay"`
	PreviousWeek  WindowCounts `json:"previousWeek"`
	PreviousMonth WindowCounts `json:"previousMonth"`
	VsDay         GrowthRates  `json:"vsPreviousDay"`
	VsWeek        GrowthRates  `json:"vsPreviousWeek"`
	VsMonth       GrowthRates  `json:"vsPreviousMonth"`
}

type AverageDurations struct {
	Preparation float64 `json:"preparation"`
	Control     float64 `json:"control"`
	Packing     float64 `json:"packing"`
	Total       float64 `json:"total"`
	Samples     int64   `json:"samples"`
}

type AgentWorkload struct {
	AgentID     string `json:"agentId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Created     int64  `json:"created"`
	Prepared    int64  `json:"prepared"`
	Controlled  int64  `json:"controlled"`
	Packed      int64  `json:"packed"`
	Total       int64  `json:"total"`
}

type MonthlySeries struct {
	Labels []string `json:"labels"`
	Orders []int64  `json:"orders"`
	Packed []int64  `json:"packed"`
}

type Dashboard struct {
	Window       Window           `json:"window"`
	Distribution Distribution     `json:"distribution"`
	Growth       Growth           `json:"growth"`
	Durations    AverageDurations `json:"durations"`
	Workload     []AgentWorkload  `json:"workload"`
	Monthly      MonthlySeries    `json:"monthly"`
	Failed       []string         `json:"failedSections"`
}

type UpstreamProduct struct {
	Name      string `json:"productName"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"price"`
}

type StageHandler struct {
	Username string     `json:"username,omitempty"`
	At       *time.Time `json:"timestamp"`
}

type UpstreamOrder struct {
	ID             string                  `json:"id"`
	Reference      string                  `json:"reference"`
	Date           time.Time               `json:"date"`
	Status         string                  `json:"status"`
	CustomerName   string                  `json:"customerName"`
	TotalPaid      string                  `json:"totalPaid"`
	PaymentMethod  string                  `json:"paymentMethod"`
	Products       []UpstreamProduct       `json:"products"`
	InternalID     *string                 `json:"internalOrderId"`
	InternalStatus *string                 `json:"internalOrderStatus"`
	Handlers       map[string]StageHandler `json:"handlers,omitempty"`
}

func toOrder(o *order.Order) Order {
	return toOrderView(queries.OrderView{
		ID:           o.ID(),
		Reference:    o.Reference(),
		CartNumber:   o.CartNumber(),
		LineCount:    o.LineCount(),
		Status:       o.Status(),
		CreatorID:    o.Creator(),
		PreparerID:   o.Preparer(),
		ControllerID: o.Controller(),
		PackerID:     o.Packer(),
		CreatedAt:    o.CreatedAt(),
		PreparedAt:   o.PreparedAt(),
		ControlledAt: o.ControlledAt(),
		PackedAt:     o.PackedAt(),
		CompletedAt:  o.CompletedAt(),
		Durations:    o.StageDurations(),
	})
}

func toOrderView(v queries.OrderView) Order {
	return Order{
		ID:           v.ID.String(),
		Reference:    v.Reference,
		CartNumber:   v.CartNumber,
		LineCount:    v.LineCount,
		Status:       v.Status.String(),
		CreatorID:    idString(v.CreatorID),
		PreparerID:   idString(v.PreparerID),
		ControllerID: idString(v.ControllerID),
		PackerID:     idString(v.PackerID),
		CreatedAt:    v.CreatedAt,
		PreparedAt:   v.PreparedAt,
		ControlledAt: v.ControlledAt,
		PackedAt:     v.PackedAt,
		CompletedAt:  v.CompletedAt,
		Durations: Durations{
			Preparation: v.Durations.Preparation,
			Control:     v.Durations.Control,
			Packing:     v.Durations.Packing,
			Total:       v.Durations.Total,
		},
	}
}

func toOrderPage(p queries.OrderPage) OrderPage {
	results := make([]Order, 0, len(p.Results))
	for _, v := range p.Results {
		results = append(results, toOrderView(v))
	}
	return OrderPage{
		Results:    results,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

func toUser(u *identity.User) User {
	return User{
		ID:          u.ID().String(),
		Username:    u.Username(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		DisplayName: u.DisplayName(),
		Role:        u.Role().String(),
	}
}

func toUserView(u queries.UserView) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName,
		Role:        u.Role.String(),
	}
}

func toDashboard(d queries.Dashboard) Dashboard {
	byStatus := make(map[string]int64, len(d.Distribution.ByStatus))
	for st, n := range d.Distribution.ByStatus {
		byStatus[st.String()] = n
	}
	workload := make([]AgentWorkload, 0, len(d.Workload))
	for _, w := range d.Workload {
		workload = append(workload, AgentWorkload(w))
	}
	failed := d.Failed
	if failed == nil {
		failed = []string{}
	}
	g := d.Growth
	return Dashboard{
		Window: Window{
			Start:    d.Window.Start,
			End:      d.Window.End,
			Label:    d.Window.Label,
			Fallback: d.Window.Fallback,
			Reason:   d.Window.Reason,
		},
		Distribution: Distribution{
			ByStatus:   byStatus,
			Total:      d.Distribution.Total,
			Completed:  d.Distribution.Completed,
			InProgress: d.Distribution.InProgress,
		},
		Growth: Growth{
			Current:       WindowCounts(g.Current),
			PreviousDay:   WindowCounts(g.PreviousDay),
			PreviousWeek:  WindowCounts(g.PreviousWeek),
			PreviousMonth: WindowCounts(g.PreviousMonth),
			VsDay:         GrowthRates(g.VsDay),
			VsWeek:        GrowthRates(g.VsWeek),
			VsMonth:       GrowthRates(g.VsMonth),
		},
		Durations: AverageDurations(d.Durations),
		Workload:  workload,
		Monthly:   MonthlySeries(d.Monthly),
		Failed:    failed,
	}
}

func toUpstreamOrder(v queries.UpstreamOrderView) UpstreamOrder {
	products := make([]UpstreamProduct, 0, len(v.Upstream.Products))
	for _, p := range v.Upstream.Products {
		products = append(products, UpstreamProduct{Name: p.Name, Quantity: p.Quantity, UnitPrice: p.UnitPrice})
	}
	out := UpstreamOrder{
		ID:            v.Upstream.ID,
		Reference:     v.Upstream.Reference,
		Date:          v.Upstream.PlacedAt,
		Status:        v.StateCode,
		CustomerName:  v.Upstream.CustomerName,
		TotalPaid:     v.Upstream.TotalPaid,
		PaymentMethod: v.Upstream.Payment,
		Products:      products,
	}
	if in := v.Internal; in != nil {
		id := in.ID.String()
		status := in.Status.String()
		created := in.CreatedAt
		out.InternalID = &id
		out.InternalStatus = &status
		out.Handlers = map[string]StageHandler{
			"creator":    {Username: v.CreatedBy, At: &created},
			"preparer":   {Username: v.PreparedBy, At: in.PreparedAt},
			"controller": {Username: v.ControlledBy, At: in.ControlledAt},
			"packer":     {Username: v.PackedBy, At: in.PackedAt},
		}
	}
	return out
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
