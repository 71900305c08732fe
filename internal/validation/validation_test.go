package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskservice/internal/models"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *models.DateTime {
	return &models.DateTime{Time: fixedNow.Add(d)}
}

func newTestValidator() *Validator {
	return New(func() time.Time { return fixedNow })
}

func TestCheckDueDate(t *testing.T) {
	tests := []struct {
		name    string
		status  models.Status
		dueDate *models.DateTime
		want    string
	}{
		{"pending without due date", models.StatusPending, nil, MsgDueDateMandatory},
		{"in progress without due date", models.StatusInProgress, nil, MsgDueDateMandatory},
		{"missing status without due date", "", nil, MsgDueDateMandatory},
		{"pending in the past", models.StatusPending, at(-time.Second), MsgDueDateInThePast},
		{"in progress in the past", models.StatusInProgress, at(-48 * time.Hour), MsgDueDateInThePast},
		{"pending exactly now", models.StatusPending, at(0), ""},
		{"pending in the future", models.StatusPending, at(24 * time.Hour), ""},
		{"completed without due date", models.StatusCompleted, nil, MsgDueDateInvalid},
		{"completed in the past", models.StatusCompleted, at(-240 * time.Hour), ""},
		{"completed in the future", models.StatusCompleted, at(time.Hour), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckDueDate(&models.TaskRequest{Title: "x", Status: tc.status, DueDate: tc.dueDate}, fixedNow)
			if tc.want == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, Violation{Field: FieldDueDate, Message: tc.want}, got[0])
		})
	}
}

func TestCheckDueDate_NilRequest(t *testing.T) {
	got := CheckDueDate(nil, fixedNow)
	require.Len(t, got, 1)
	assert.Equal(t, FieldRequest, got[0].Field)
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator()

	t.Run("valid request", func(t *testing.T) {
		err := v.ValidateRequest(&models.TaskRequest{Title: "Buy milk", Status: models.StatusPending, DueDate: at(time.Hour)})
		assert.NoError(t, err)
	})

	t.Run("nil request", func(t *testing.T) {
		err := v.ValidateRequest(nil)
		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"request: " + MsgRequestRequired}, verr.Messages())
	})

	blankTitles := []string{"", "   ", "\t\n"}
	for _, title := range blankTitles {
		t.Run("blank title "+quote(title), func(t *testing.T) {
			err := v.ValidateRequest(&models.TaskRequest{Title: title, Status: models.StatusPending, DueDate: at(time.Hour)})
			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, []string{"title: " + MsgTitleMandatory}, verr.Messages())
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		err := v.ValidateRequest(&models.TaskRequest{Title: "t", Status: "DONE", DueDate: at(time.Hour)})
		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"status: " + MsgStatusInvalid}, verr.Messages())
	})

	t.Run("field and due-date violations are collected together", func(t *testing.T) {
		err := v.ValidateRequest(&models.TaskRequest{Title: "", Status: models.StatusPending})
		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{
			"title: " + MsgTitleMandatory,
			"dueDate: " + MsgDueDateMandatory,
		}, verr.Messages())
		assert.Contains(t, verr.Error(), MsgDueDateMandatory)
	})
}

func TestValidateStatus(t *testing.T) {
	v := newTestValidator()

	for _, s := range []models.Status{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		assert.NoError(t, v.ValidateStatus(s), s)
	}

	for _, s := range []models.Status{"", "pending", "DONE"} {
		err := v.ValidateStatus(s)
		var verr *Error
		require.True(t, errors.As(err, &verr), s)
		assert.Equal(t, FieldStatus, verr.Violations[0].Field)
	}
}

func quote(s string) string {
	return "\"" + s + "\""
}
