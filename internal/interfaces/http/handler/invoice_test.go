package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storesync/backend/internal/domain/shared"
)

func invoiceRouter(invoices InvoiceRenderer) *gin.Engine {
	engine := gin.New()
	NewInvoiceHandler(invoices).RegisterRoutes(&engine.RouterGroup)
	return engine
}

func TestGetInvoice_ServesHTML(t *testing.T) {
	orderID := uuid.New()
	invoices := new(MockInvoiceRenderer)
	invoices.On("RenderInvoice", mock.Anything, orderID).Return("<html>invoice</html>", nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID.String()+"/invoice", nil)
	w := httptest.NewRecorder()
	invoiceRouter(invoices).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "<html>invoice</html>", w.Body.String())
}

func TestGetInvoice_UnknownOrder(t *testing.T) {
	invoices := new(MockInvoiceRenderer)
	invoices.On("RenderInvoice", mock.Anything, mock.Anything).Return("", shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString()+"/invoice", nil)
	w := httptest.NewRecorder()
	invoiceRouter(invoices).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInvoice_BadID(t *testing.T) {
	invoices := new(MockInvoiceRenderer)

	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid/invoice", nil)
	w := httptest.NewRecorder()
	invoiceRouter(invoices).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	invoices.AssertNotCalled(t, "RenderInvoice")
}
