// Package controller orchestrates the dashboard pipeline: it owns the
// current filter criteria and view mode, and reacts to external events
// by re-running filter → grouping → projection → render.
package controller

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/peter890821/esg-eval-dashboard/internal/board"
	"github.com/peter890821/esg-eval-dashboard/internal/export"
	"github.com/peter890821/esg-eval-dashboard/internal/filter"
	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/internal/view"
)

// ViewMode selects the active presentation of the filtered set.
type ViewMode string

const (
	ViewKanban ViewMode = "kanban"
	ViewTable  ViewMode = "table"
)

// DefaultSearchDelay is the quiescence window for search input.
const DefaultSearchDelay = 300 * time.Millisecond

// Renderer is the rendering surface contract. The controller emits
// plain presentation payloads; it assumes nothing about the rendering
// technology behind this interface.
type Renderer interface {
	RenderBoard(columns []view.Column)
	RenderTable(rows []view.Summary)
	RenderDetail(d view.Detail)
	CloseDetail()
	RenderError(msg string)
}

// Controller holds the dashboard session state. The loaded record set
// is immutable; the filtered and grouped projections are recomputed on
// every filter-affecting event.
type Controller struct {
	mu       sync.Mutex
	records  []model.Record
	criteria filter.Criteria
	mode     ViewMode
	modal    *model.Record
	renderer Renderer
	searchDB *Debouncer
}

// New creates a controller over an immutable record set. Initial state
// is the kanban view with the detail overlay closed; Render must be
// called once to paint it.
func New(records []model.Record, r Renderer) *Controller {
	return &Controller{
		records:  records,
		mode:     ViewKanban,
		renderer: r,
		searchDB: NewDebouncer(DefaultSearchDelay),
	}
}

// Render paints the currently active view.
func (c *Controller) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked()
}

// SetCriteria replaces the filter criteria and re-renders the active
// view. The modal state is untouched.
func (c *Controller) SetCriteria(criteria filter.Criteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria = criteria
	c.renderLocked()
}

// SetSearch updates the search criterion after the quiescence window;
// rapid successive calls coalesce into a single pipeline run.
func (c *Controller) SetSearch(text string) {
	c.searchDB.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.criteria.Search = text
		c.renderLocked()
	})
}

// SetView switches the active view and re-renders it. The inactive
// view is hidden by the surface, not kept in sync.
func (c *Controller) SetView(mode ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.renderLocked()
}

// Select opens the detail overlay for the record with the given id.
// Selection bypasses filtering; an unknown id is ignored.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.records {
		if c.records[i].ID == id {
			c.modal = &c.records[i]
			c.renderer.RenderDetail(view.Project(c.records[i]))
			return
		}
	}
	zap.L().Debug("selection ignored for unknown record", zap.String("id", id))
}

// CloseDetail closes the overlay unconditionally.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = nil
	c.renderer.CloseDetail()
}

// Fail reports a terminal load failure to the rendering surface. No
// filter pipeline runs afterwards.
func (c *Controller) Fail(err error) {
	c.renderer.RenderError(err.Error())
}

// Criteria returns the active filter criteria.
func (c *Controller) Criteria() filter.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Mode returns the active view mode.
func (c *Controller) Mode() ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Selected returns the record in the open overlay, or nil.
func (c *Controller) Selected() *model.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// Filtered returns the current working set.
func (c *Controller) Filtered() []model.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.Apply(c.records, c.criteria)
}

// ExportCSV serializes the current filtered set, not the full set.
func (c *Controller) ExportCSV() []byte {
	return export.CSV(c.Filtered())
}

// Close releases the controller's pending timers.
func (c *Controller) Close() {
	c.searchDB.Stop()
}

func (c *Controller) renderLocked() {
	filtered := filter.Apply(c.records, c.criteria)
	switch c.mode {
	case ViewTable:
		c.renderer.RenderTable(view.SummarizeAll(filtered))
	default:
		c.renderer.RenderBoard(view.ProjectGroups(board.Build(filtered)))
	}
}
