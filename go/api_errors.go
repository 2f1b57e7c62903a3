package inventoryserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
	apierrors "github.com/Apurer/go-gin-inventory-server/internal/shared/errors"
)

const (
	msgMissingNameOrQuantity = "Missing name or quantity"
	msgMissingName           = "Missing name"
	msgNameTooLong           = "Name must be at most 255 characters"
	msgQuantityNotInteger    = "Quantity must be an integer"
	msgItemExists            = "Item already exists"
	msgItemNotFound          = "Item not found"
)

// errorResponders holds one mapper chain per operation. Storage failures keep
// the status each endpoint has always used.
type errorResponders struct {
	addItem        *apierrors.ChainedResponder
	removeItem     *apierrors.ChainedResponder
	updateQuantity *apierrors.ChainedResponder
	getItems       *apierrors.ChainedResponder
	getItem        *apierrors.ChainedResponder
}

func newErrorResponders(responder *apierrors.Responder) errorResponders {
	return errorResponders{
		addItem: apierrors.NewChainedResponder(responder,
			invalidInputMapper(msgMissingNameOrQuantity),
			conflictMapper,
			storageMapper(http.StatusBadRequest, "Error adding item"),
		),
		removeItem: apierrors.NewChainedResponder(responder,
			invalidInputMapper(msgMissingName),
			notFoundMapper,
			storageMapper(http.StatusNotFound, "Error removing item"),
		),
		updateQuantity: apierrors.NewChainedResponder(responder,
			invalidInputMapper(msgMissingNameOrQuantity),
			notFoundMapper,
			storageMapper(http.StatusNotFound, "Error updating quantity"),
		),
		getItems: apierrors.NewChainedResponder(responder,
			storageMapper(http.StatusNotFound, "Error getting items"),
		),
		getItem: apierrors.NewChainedResponder(responder,
			invalidInputMapper(msgMissingName),
			notFoundMapper,
			storageMapper(http.StatusNotFound, "Error getting item"),
		),
	}
}

// invalidInputMapper picks the client message from the domain cause. Missing
// fields use the operation's own wording.
func invalidInputMapper(missing string) apierrors.ErrorMapper {
	return func(err error) (apierrors.Problem, bool) {
		if !errors.Is(err, inventoryapp.ErrInvalidInput) {
			return apierrors.Problem{}, false
		}
		switch {
		case errors.Is(err, domain.ErrMissingName), errors.Is(err, domain.ErrMissingQuantity):
			return apierrors.ErrBadRequest.WithMessage(missing), true
		case errors.Is(err, domain.ErrNameTooLong):
			return apierrors.ErrBadRequest.WithMessage(msgNameTooLong), true
		case errors.Is(err, domain.ErrQuantityNotInteger), errors.Is(err, domain.ErrQuantityOutOfRange):
			return apierrors.ErrBadRequest.WithMessage(msgQuantityNotInteger), true
		}
		return apierrors.ErrBadRequest.WithMessage(err.Error()), true
	}
}

func conflictMapper(err error) (apierrors.Problem, bool) {
	if errors.Is(err, inventoryports.ErrAlreadyExists) {
		return apierrors.ErrBadRequest.WithMessage(msgItemExists), true
	}
	return apierrors.Problem{}, false
}

func notFoundMapper(err error) (apierrors.Problem, bool) {
	if errors.Is(err, inventoryports.ErrNotFound) {
		return apierrors.ErrNotFound.WithMessage(msgItemNotFound), true
	}
	return apierrors.Problem{}, false
}

// storageMapper is the catch-all of every chain; the service tags anything
// unexpected as a storage failure.
func storageMapper(status int, prefix string) apierrors.ErrorMapper {
	return func(err error) (apierrors.Problem, bool) {
		return apierrors.NewProblem(status, prefix).WithDetail(err.Error()), true
	}
}

// respondInvalidJSON reports a body that could not be decoded.
func respondInvalidJSON(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Invalid JSON").WithDetail(err.Error()))
}
