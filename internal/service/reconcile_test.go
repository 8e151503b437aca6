package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

func pendingTx(tt models.TransferType) models.Transaction {
	return models.Transaction{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		ExternalID:   uuid.NewString(),
		Amount:       100,
		Fee:          10,
		PaymentType:  models.PaymentOffchain,
		TransferType: tt,
		Status:       models.StatusPending,
	}
}

// TestReconcilePending_SettledInvoice — подтверждённый инвойс зачисляется
// через CompleteReceive.
func TestReconcilePending_SettledInvoice(t *testing.T) {
	t.Parallel()

	svc, st, ln, ctrl := newSvc(t)
	defer ctrl.Finish()

	tx := pendingTx(models.TransferReceive)
	st.EXPECT().ListTransactions(gomock.Any(), models.TransactionFilter{
		Statuses: []models.TransactionStatus{models.StatusPending},
	}).Return([]models.Transaction{tx}, nil)
	ln.EXPECT().InvoiceStatus(gomock.Any(), tx.ExternalID).
		Return(lightning.InvoiceSettled, nil)
	st.EXPECT().CompleteReceive(gomock.Any(), tx.ID).
		Return(&models.Transaction{ID: tx.ID, Status: models.StatusComplete}, nil)

	require.NoError(t, svc.ReconcilePending(context.Background()))
}

// TestReconcilePending_CanceledInvoice — отменённый нодой инвойс
// помечается expired без изменения баланса.
func TestReconcilePending_CanceledInvoice(t *testing.T) {
	t.Parallel()

	svc, st, ln, ctrl := newSvc(t)
	defer ctrl.Finish()

	tx := pendingTx(models.TransferReceive)
	st.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return([]models.Transaction{tx}, nil)
	ln.EXPECT().InvoiceStatus(gomock.Any(), tx.ExternalID).
		Return(lightning.InvoiceCanceled, nil)
	st.EXPECT().ResolveTransaction(gomock.Any(), tx.ID, models.StatusExpired).
		Return(&models.Transaction{ID: tx.ID, Status: models.StatusExpired}, nil)

	require.NoError(t, svc.ReconcilePending(context.Background()))
}

// TestReconcilePending_SendOutcomes — завершившийся платёж списывается,
// провалившийся отменяется; открытый инвойс не трогается.
func TestReconcilePending_SendOutcomes(t *testing.T) {
	t.Parallel()

	svc, st, ln, ctrl := newSvc(t)
	defer ctrl.Finish()

	succeeded := pendingTx(models.TransferSend)
	failed := pendingTx(models.TransferSend)
	open := pendingTx(models.TransferReceive)

	st.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return([]models.Transaction{succeeded, failed, open}, nil)

	ln.EXPECT().PaymentStatus(gomock.Any(), succeeded.ExternalID).
		Return(lightning.PaymentSucceeded, nil)
	st.EXPECT().CompleteSend(gomock.Any(), succeeded.ID, succeeded.Fee).
		Return(&models.Transaction{ID: succeeded.ID, Status: models.StatusComplete}, nil)

	ln.EXPECT().PaymentStatus(gomock.Any(), failed.ExternalID).
		Return(lightning.PaymentFailed, nil)
	st.EXPECT().ResolveTransaction(gomock.Any(), failed.ID, models.StatusCancelled).
		Return(&models.Transaction{ID: failed.ID, Status: models.StatusCancelled}, nil)

	ln.EXPECT().InvoiceStatus(gomock.Any(), open.ExternalID).
		Return(lightning.InvoiceOpen, nil)

	require.NoError(t, svc.ReconcilePending(context.Background()))
}

// TestReconcilePending_ConflictIgnored — гонка с обработчиком,
// уже завершившим запись: ErrConflict не прерывает проход.
func TestReconcilePending_ConflictIgnored(t *testing.T) {
	t.Parallel()

	svc, st, ln, ctrl := newSvc(t)
	defer ctrl.Finish()

	tx := pendingTx(models.TransferReceive)
	st.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return([]models.Transaction{tx}, nil)
	ln.EXPECT().InvoiceStatus(gomock.Any(), tx.ExternalID).
		Return(lightning.InvoiceSettled, nil)
	st.EXPECT().CompleteReceive(gomock.Any(), tx.ID).
		Return(nil, storage.ErrConflict)

	require.NoError(t, svc.ReconcilePending(context.Background()))
}

// TestReconcilePending_SkipsOnchain — ончейн-записи пропускаются,
// нода по ним не опрашивается.
func TestReconcilePending_SkipsOnchain(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	tx := pendingTx(models.TransferReceive)
	tx.PaymentType = models.PaymentOnchain

	st.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return([]models.Transaction{tx}, nil)

	require.NoError(t, svc.ReconcilePending(context.Background()))
}
