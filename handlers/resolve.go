package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shootscout/models"
	"shootscout/services/resolver"
	"shootscout/utils"
)

// ResolveHandler serves the photographer resolution endpoints.
type ResolveHandler struct {
	Engine *resolver.Engine
}

// NewResolveHandler builds a handler around the resolution engine.
func NewResolveHandler(engine *resolver.Engine) *ResolveHandler {
	return &ResolveHandler{Engine: engine}
}

// resolveInput is the booking form state driving a resolution cycle.
type resolveInput struct {
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	Zip           string               `json:"zip"`
	Photographers []models.RosterEntry `json:"photographers"`
}

// ResolvePhotographers starts a resolution cycle for the posted booking target and
// roster, waits for it to settle, and returns the ranked result. Posting again with
// different inputs supersedes the running cycle.
func (h *ResolveHandler) ResolvePhotographers(c *gin.Context) {
	var input resolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	target := models.BookingTarget{
		Address: models.Address{Address: input.Address, City: input.City, State: input.State, Zip: input.Zip},
		Date:    input.Date,
		Time:    input.Time,
	}

	cycle := h.Engine.Resolve(target, input.Photographers)
	select {
	case <-cycle.Done():
	case <-c.Request.Context().Done():
		return
	}

	h.writeSnapshot(c, cycle.ID, input.Time != "")
}

// GetSnapshot returns the last-committed snapshot without starting a cycle, so a
// polling consumer can render the progressive enrichment states.
func (h *ResolveHandler) GetSnapshot(c *gin.Context) {
	h.writeSnapshot(c, "", c.Query("time_selected") == "true")
}

// CancelResolution aborts the in-flight cycle, e.g. when the booking form closes.
func (h *ResolveHandler) CancelResolution(c *gin.Context) {
	h.Engine.Cancel()
	c.Status(http.StatusNoContent)
}

func (h *ResolveHandler) writeSnapshot(c *gin.Context, cycleID string, timeSelected bool) {
	snap := h.Engine.Snapshot()

	opts := resolver.RankOptions{
		Query:        c.Query("q"),
		SortBy:       resolver.SortBy(c.DefaultQuery("sort_by", string(resolver.SortByDistance))),
		ShowAll:      c.Query("show_all") == "true",
		TimeSelected: timeSelected,
	}
	ranked := resolver.Rank(snap.Photographers, snap.Availability, opts)

	resp := gin.H{
		"state":         snap.State,
		"photographers": ranked,
		"availability":  snap.Availability,
	}
	if snap.Notice != "" {
		resp["notice"] = snap.Notice
	}
	if cycleID != "" {
		resp["cycleID"] = cycleID
	}
	c.JSON(http.StatusOK, resp)
}
