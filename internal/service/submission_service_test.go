package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/duedate"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/events"
	"github.com/hipolitokrisandrew-code/hr-request-service/internal/repository"
)

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type stubBlobStore struct {
	stored int
}

func (s *stubBlobStore) Store(_ context.Context, _ []byte, _, _ string) (string, error) {
	s.stored++
	return "/files/stub-id", nil
}

func (s *stubBlobStore) Fetch(context.Context, string) (*domain.BlobObject, error) {
	return nil, repository.ErrRowNotFound
}

func newSubmissionFixture() (*SubmissionService, *repository.MemoryRowStore, *capturingDispatcher, *stubBlobStore) {
	store := repository.NewMemoryRowStore()
	dispatcher := &capturingDispatcher{}
	blobs := &stubBlobStore{}
	svc := NewSubmissionService(SubmissionDependencies{
		Store:      store,
		Tables:     testTables,
		Blobs:      blobs,
		Engine:     duedate.NewEngine(nil),
		Dispatcher: dispatcher,
	})
	svc.now = func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC) }
	return svc, store, dispatcher, blobs
}

func TestSubmitRequestAssignsIDAndDueDate(t *testing.T) {
	svc, store, dispatcher, _ := newSubmissionFixture()

	rec, err := svc.SubmitRequest(context.Background(), staffSession(), SubmitInput{
		Service: "Employee Relations",
		Details: "formal complaint",
	})
	require.NoError(t, err)

	assert.Equal(t, "ITM-7-0001", rec.RequestID)
	assert.Equal(t, domain.UnitITAM, rec.Company)
	assert.Equal(t, domain.StatusOpen, rec.Status)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, time.Date(2024, time.June, 26, 9, 0, 0, 0, time.UTC), *rec.DueDate)

	rows, err := store.ListRows(context.Background(), "requests_itam")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventRequestSubmitted, dispatcher.published[0].Type)
	assert.Equal(t, "ITM-7-0001", dispatcher.published[0].RequestID)
}

func TestSubmitRequestSequencesPerUnit(t *testing.T) {
	svc, store, _, _ := newSubmissionFixture()
	store.Seed("requests_itam", []repository.Row{
		{"request_id": "ITM-7-0007"},
	})

	rec, err := svc.SubmitRequest(context.Background(), staffSession(), SubmitInput{Service: "Payslip"})
	require.NoError(t, err)
	assert.Equal(t, "ITM-7-0008", rec.RequestID)
}

func TestSubmitRequestStoresAttachment(t *testing.T) {
	svc, _, _, blobs := newSubmissionFixture()

	rec, err := svc.SubmitRequest(context.Background(), staffSession(), SubmitInput{
		Service: "Payslip",
		Attachment: &AttachmentInput{
			Data:     []byte("payslip bytes"),
			MimeType: "application/pdf",
			FileName: "payslip.pdf",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, blobs.stored)
	assert.Contains(t, rec.Details, "/files/stub-id")
}

func TestSubmitRequestAnomalyForRequiredDueDate(t *testing.T) {
	svc, store, dispatcher, _ := newSubmissionFixture()

	// zero request date forces the engine to decline, but the submission
	// still goes through; the gap is reported as an event
	svc.now = func() time.Time { return time.Time{} }

	rec, err := svc.SubmitRequest(context.Background(), staffSession(), SubmitInput{
		Service: "Payroll Processing",
	})
	require.NoError(t, err)
	assert.Nil(t, rec.DueDate)

	rows, err := store.ListRows(context.Background(), "requests_itam")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.Len(t, dispatcher.published, 2)
	assert.Equal(t, events.EventDueDateMissing, dispatcher.published[0].Type)
	assert.Equal(t, events.EventRequestSubmitted, dispatcher.published[1].Type)
}

func TestSubmitRequestValidation(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture()

	_, err := svc.SubmitRequest(context.Background(), nil, SubmitInput{Service: "Payslip"})
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))

	_, err = svc.SubmitRequest(context.Background(), staffSession(), SubmitInput{Service: "  "})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	badSession := staffSession()
	badSession.CompanyCode = "XYZ"
	_, err = svc.SubmitRequest(context.Background(), badSession, SubmitInput{Service: "Payslip"})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}
