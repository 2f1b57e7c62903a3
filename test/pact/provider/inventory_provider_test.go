//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	inventoryserver "github.com/Apurer/go-gin-inventory-server/go"
	inventorymemory "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	pacttest "github.com/Apurer/go-gin-inventory-server/test/pact"
)

func TestInventoryProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateInventoryEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateWidgetExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seed(t, pacttest.ExistingItemName, pacttest.ExistingItemQuantity)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *inventorymemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := inventorymemory.NewRepository()
	service := inventoryobs.New(inventoryapp.NewService(repo))

	handlers := inventoryserver.ApiHandleFunctions{
		InventoryAPI: inventoryserver.NewInventoryAPI(service, nil),
	}

	router := gin.New()
	router.Use(gin.Recovery(), inventoryserver.RequestID())
	router = inventoryserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	items, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, item := range items {
		_ = a.repo.Delete(context.Background(), item.Name)
	}
}

func (a *contractProviderApp) seed(t testing.TB, name string, quantity int64) {
	t.Helper()
	item, err := domain.NewItem(name, quantity)
	require.NoError(t, err)
	_, err = a.repo.Create(context.Background(), item)
	require.NoError(t, err)
}
