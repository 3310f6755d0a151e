// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/sahara/internal/app/store/audit"
	"github.com/dalemusser/sahara/internal/app/system/paging"
	"github.com/dalemusser/sahara/internal/app/system/respond"
	"github.com/dalemusser/sahara/internal/app/system/timeouts"
)

// ServeList handles GET /admin/audit. Query parameters: category,
// event_type, request_id, volunteer_id, start_date, end_date (YYYY-MM-DD),
// page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		respond.Error(w, http.StatusServiceUnavailable, "audit storage is not configured")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Query(), h.Log, "audit log list")
	defer cancel()

	q := r.URL.Query()
	data := listData{
		Category:    strings.TrimSpace(q.Get("category")),
		EventType:   strings.TrimSpace(q.Get("event_type")),
		RequestID:   strings.TrimSpace(q.Get("request_id")),
		VolunteerID: strings.TrimSpace(q.Get("volunteer_id")),
		StartDate:   strings.TrimSpace(q.Get("start_date")),
		EndDate:     strings.TrimSpace(q.Get("end_date")),
		Categories:  allCategories(),
		Page:        paging.ParsePage(r),
	}
	data.EventTypes = eventTypesForCategory(data.Category)

	filter := audit.QueryFilter{
		Category:    data.Category,
		EventType:   data.EventType,
		RequestID:   data.RequestID,
		VolunteerID: data.VolunteerID,
		Limit:       paging.Limit(),
		Offset:      paging.Offset(data.Page),
	}
	if data.StartDate != "" {
		t, err := time.Parse("2006-01-02", data.StartDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartTime = &t
	}
	if data.EndDate != "" {
		t, err := time.Parse("2006-01-02", data.EndDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		// End of day
		endOfDay := t.Add(24*time.Hour - time.Second)
		filter.EndTime = &endOfDay
	}

	events, err := h.Store.Query(ctx, filter)
	if err != nil {
		respond.Internal(w, h.Log, "failed to query audit events", err)
		return
	}
	total, err := h.Store.CountByFilter(ctx, filter)
	if err != nil {
		respond.Internal(w, h.Log, "failed to count audit events", err)
		return
	}

	if events == nil {
		events = []audit.Event{}
	}
	data.Items = events
	data.Total = total
	win := paging.ComputeWindow(data.Page, total)
	data.TotalPages = win.TotalPages
	data.HasPrev = win.HasPrev
	data.HasNext = win.HasNext

	respond.OK(w, data)
}
