package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grandline/theories/internal/api/metrics"
	"github.com/grandline/theories/internal/core/ports"
	"github.com/grandline/theories/internal/reference"
)

// TheoryHandler serves the theory pages: the bundled reference content, the
// per-category listings, and the add/edit/delete forms.
type TheoryHandler struct {
	service   ports.TheoryService
	reference []reference.Theory
}

func NewTheoryHandler(service ports.TheoryService, ref []reference.Theory) *TheoryHandler {
	return &TheoryHandler{service: service, reference: ref}
}

type theoryForm struct {
	Category string `form:"category" validate:"required"`
	Title    string `form:"title" validate:"required,max=200"`
	Content  string `form:"content" validate:"required"`
}

// Index handles GET /. The landing page shows the bundled reference content,
// not the database.
func (h *TheoryHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", Page{
		Title:     "Grand Line Theories",
		Flash:     PopFlash(c),
		Username:  ctxUsername(c),
		Reference: h.reference,
	})
}

// Theories handles GET /theories, the same bundled reference content under
// its own page title.
func (h *TheoryHandler) Theories(c echo.Context) error {
	return c.Render(http.StatusOK, "theories.html", Page{
		Title:     "Theory",
		Flash:     PopFlash(c),
		Username:  ctxUsername(c),
		Reference: h.reference,
	})
}

// Category returns the handler for one of the six category listing pages,
// filtered to the named category.
func (h *TheoryHandler) Category(category, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		theories, err := h.service.ListByCategory(c.Request().Context(), category)
		if err != nil {
			return err
		}

		return c.Render(http.StatusOK, "category_theories.html", Page{
			Title:    title,
			Flash:    PopFlash(c),
			Username: ctxUsername(c),
			Theories: theories,
		})
	}
}

// AddForm handles GET /add_theories. Browsing the form needs no session;
// only the submission is gated.
func (h *TheoryHandler) AddForm(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "add_theory.html", Page{
		Title:      "Create a Theory",
		Flash:      PopFlash(c),
		Username:   ctxUsername(c),
		Categories: categories,
	})
}

// Add handles POST /add_theories. Authorship comes from the session, so the
// form cannot spoof created_by.
func (h *TheoryHandler) Add(c echo.Context) error {
	var form theoryForm
	if err := c.Bind(&form); err != nil {
		SetFlash(c, "Invalid submission")
		return c.Redirect(http.StatusSeeOther, "/add_theories")
	}
	if err := c.Validate(&form); err != nil {
		SetFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, "/add_theories")
	}

	_, err := h.service.Create(c.Request().Context(), ports.TheoryInput{
		Category:  form.Category,
		Title:     form.Title,
		Content:   form.Content,
		CreatedBy: ctxUsername(c),
	})
	if err != nil {
		return err
	}

	metrics.TheoriesCreatedTotal.WithLabelValues(form.Category).Inc()
	SetFlash(c, "Theory Successfully Added")
	return c.Redirect(http.StatusSeeOther, "/theories")
}

// EditForm handles GET /edit_theories/:theory_id, pre-populating the form
// from the stored document.
func (h *TheoryHandler) EditForm(c echo.Context) error {
	theory, err := h.service.Get(c.Request().Context(), c.Param("theory_id"))
	if err != nil {
		return err
	}

	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit_theory.html", Page{
		Title:      "Edit a Theory",
		Flash:      PopFlash(c),
		Username:   ctxUsername(c),
		Theory:     theory,
		Categories: categories,
	})
}

// Edit handles POST /edit_theories/:theory_id.
func (h *TheoryHandler) Edit(c echo.Context) error {
	id := c.Param("theory_id")

	var form theoryForm
	if err := c.Bind(&form); err != nil {
		SetFlash(c, "Invalid submission")
		return c.Redirect(http.StatusSeeOther, "/edit_theories/"+id)
	}
	if err := c.Validate(&form); err != nil {
		SetFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, "/edit_theories/"+id)
	}

	err := h.service.Update(c.Request().Context(), id, ports.TheoryInput{
		Category:  form.Category,
		Title:     form.Title,
		Content:   form.Content,
		CreatedBy: ctxUsername(c),
	})
	if err != nil {
		return err
	}

	metrics.TheoriesUpdatedTotal.Inc()
	SetFlash(c, "Theory Successfully Updated")
	return c.Redirect(http.StatusSeeOther, "/theories")
}

// Delete handles GET /delete_theories/:theory_id. Deleting an id that no
// longer exists still flashes and redirects; the record set is untouched.
func (h *TheoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("theory_id")); err != nil {
		return err
	}

	metrics.TheoriesDeletedTotal.Inc()
	SetFlash(c, "Theory Successfully Deleted")
	return c.Redirect(http.StatusSeeOther, "/theories")
}
