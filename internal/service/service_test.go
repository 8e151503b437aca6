package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/pribylovaa/go-lightning-hub/internal/config"
	"github.com/pribylovaa/go-lightning-hub/internal/credentials"
	"github.com/pribylovaa/go-lightning-hub/internal/ledger"
	"github.com/pribylovaa/go-lightning-hub/mocks"
)

func testWalletCfg() config.WalletConfig {
	return config.WalletConfig{
		FeeLimit:        10,
		InvoiceExpiry:   24 * time.Hour,
		PayTimeout:      time.Minute,
		ReconcilePeriod: time.Minute,
		Partners:        []string{"partner-a"},
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockClient, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	ln := mocks.NewMockClient(ctrl)

	creds := credentials.New(st, testWalletCfg().Partners)
	led := ledger.New(st)
	svc := New(st, creds, led, ln, testWalletCfg())
	svc.SetClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })

	return svc, st, ln, ctrl
}
