package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkotelnikov/invoicehub/internal/common"
	"github.com/dkotelnikov/invoicehub/internal/server/auth"
	"github.com/dkotelnikov/invoicehub/internal/server/models"
	"github.com/dkotelnikov/invoicehub/internal/server/services"
)

type formPage struct {
	Error string
}

type homePage struct {
	Username string
	Invoices []*models.Invoice
	Error    string
}

// invoiceForm carries raw field values in and out of the edit template,
// so a failed submission re-renders exactly what the user typed.
type invoiceForm struct {
	ID              int64
	CustomerName    string
	CustomerAddress string
	Date            string
	InvoiceNo       string
	Description     string
	Total           string
	Status          string
}

type editPage struct {
	Username string
	Invoice  invoiceForm
	Error    string
}

func formFromInvoice(inv *models.Invoice) invoiceForm {
	return invoiceForm{
		ID:              inv.ID,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		Date:            inv.Date,
		InvoiceNo:       inv.InvoiceNo,
		Description:     inv.Description,
		Total:           inv.Total.String(),
		Status:          string(inv.Status),
	}
}

// validationMessage strips the sentinel prefix from a wrapped validation
// error, leaving the user-facing field message.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func (s *HTTPServer) serviceFailure(c *gin.Context, op string, err error) {
	s.logger.Error(c.Request.Context(), op+" failed",
		"request_id", c.GetString(requestIDKey), "error", err.Error())
	c.HTML(http.StatusInternalServerError, "error.html", formPage{})
}

// --- auth -------------------------------------------------------------------

func (s *HTTPServer) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", formPage{})
}

func (s *HTTPServer) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := s.users.Signup(ctx, c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.HTML(http.StatusBadRequest, "signup.html", formPage{Error: validationMessage(err)})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.HTML(http.StatusConflict, "signup.html", formPage{Error: "username already exists"})
		default:
			s.serviceFailure(c, "signup", err)
		}
		return
	}

	s.logger.Info(ctx, "user registered", "username", user.Username)

	// log the new user in immediately
	if err := s.establishSession(c, auth.Principal{UserID: user.ID, Username: user.Username}); err != nil {
		s.serviceFailure(c, "signup", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (s *HTTPServer) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", formPage{})
}

func (s *HTTPServer) Login(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := s.users.Login(ctx, c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.HTML(http.StatusUnauthorized, "login.html", formPage{Error: "invalid username or password"})
			return
		}
		s.serviceFailure(c, "login", err)
		return
	}

	if err := s.establishSession(c, auth.Principal{UserID: user.ID, Username: user.Username}); err != nil {
		s.serviceFailure(c, "login", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie. It is idempotent: logging out without
// a session is not an error.
func (s *HTTPServer) Logout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// --- invoices ---------------------------------------------------------------

func (s *HTTPServer) Home(c *gin.Context) {
	p := principalFromContext(c)

	list, err := s.invoices.List(c.Request.Context(), p.UserID)
	if err != nil {
		s.serviceFailure(c, "list invoices", err)
		return
	}

	c.HTML(http.StatusOK, "index.html", homePage{Username: p.Username, Invoices: list})
}

func invoiceInputFromForm(c *gin.Context) services.InvoiceInput {
	return services.InvoiceInput{
		CustomerName:    c.PostForm("customer_name"),
		CustomerAddress: c.PostForm("customer_address"),
		Date:            c.PostForm("date"),
		InvoiceNo:       c.PostForm("invoice_no"),
		Description:     c.PostForm("description"),
		Total:           c.PostForm("invoice_total"),
	}
}

func (s *HTTPServer) CreateInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	p := principalFromContext(c)

	_, err := s.invoices.Create(ctx, p.UserID, invoiceInputFromForm(c))
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			list, listErr := s.invoices.List(ctx, p.UserID)
			if listErr != nil {
				s.serviceFailure(c, "list invoices", listErr)
				return
			}
			c.HTML(http.StatusBadRequest, "index.html", homePage{
				Username: p.Username,
				Invoices: list,
				Error:    validationMessage(err),
			})
			return
		}
		s.serviceFailure(c, "create invoice", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func invoiceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) DeleteInvoice(c *gin.Context) {
	p := principalFromContext(c)

	id, ok := invoiceID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := s.invoices.Delete(c.Request.Context(), p.UserID, id); err != nil {
		s.serviceFailure(c, "delete invoice", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (s *HTTPServer) EditForm(c *gin.Context) {
	p := principalFromContext(c)

	id, ok := invoiceID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	inv, err := s.invoices.Get(c.Request.Context(), p.UserID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// missing or foreign-owned: no existence hint, just go home
			c.Redirect(http.StatusFound, "/")
			return
		}
		s.serviceFailure(c, "fetch invoice", err)
		return
	}

	c.HTML(http.StatusOK, "edit.html", editPage{Username: p.Username, Invoice: formFromInvoice(inv)})
}

func (s *HTTPServer) EditInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	p := principalFromContext(c)

	id, ok := invoiceID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	in := invoiceInputFromForm(c)
	status := c.PostForm("status")

	_, err := s.invoices.Update(ctx, p.UserID, id, in, status)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.Redirect(http.StatusFound, "/")
		case errors.Is(err, common.ErrorValidation):
			form := invoiceForm{
				ID:              id,
				CustomerName:    in.CustomerName,
				CustomerAddress: in.CustomerAddress,
				Date:            in.Date,
				InvoiceNo:       in.InvoiceNo,
				Description:     in.Description,
				Total:           in.Total,
				Status:          status,
			}
			c.HTML(http.StatusBadRequest, "edit.html", editPage{
				Username: p.Username,
				Invoice:  form,
				Error:    validationMessage(err),
			})
		default:
			s.serviceFailure(c, "update invoice", err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/")
}
