package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Residentia-pg/residentia-backend/models"
)

func TestDecodePayloadPreservesOrder(t *testing.T) {
	payload := []byte(`{"city":"Pune","rentAmount":13500,"city":"Mumbai"}`)

	changes, err := decodePayload(payload)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, "city", changes[0].Key)
	assert.Equal(t, "rentAmount", changes[1].Key)
	assert.Equal(t, "city", changes[2].Key)
}

func TestDecodePayloadRejectsNonObject(t *testing.T) {
	_, err := decodePayload([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestApplyChanges(t *testing.T) {
	payload := []byte(`{"rentAmount":13500,"City":"Pune","foodIncluded":true,"listedSince":"2024"}`)
	changes, err := decodePayload(payload)
	require.NoError(t, err)

	property := models.Property{City: "Mumbai", RentAmount: 9000}
	require.NoError(t, applyChanges(&property, changes, 1))

	assert.Equal(t, 13500, property.RentAmount)
	assert.Equal(t, "Pune", property.City) // keys match case-insensitively
	assert.True(t, property.FoodIncluded)
}

func TestApplyChangesLastKeyWins(t *testing.T) {
	changes, err := decodePayload([]byte(`{"city":"Pune","city":"Mumbai"}`))
	require.NoError(t, err)

	property := models.Property{}
	require.NoError(t, applyChanges(&property, changes, 1))
	assert.Equal(t, "Mumbai", property.City)
}

func TestApplyChangesRejectsWrongTypes(t *testing.T) {
	changes, err := decodePayload([]byte(`{"rentAmount":"cheap"}`))
	require.NoError(t, err)

	property := models.Property{}
	assert.ErrorIs(t, applyChanges(&property, changes, 1), ErrValidationFailed)
}

func TestSetIntNarrowsWholeFloats(t *testing.T) {
	changes, err := decodePayload([]byte(`{"maxCapacity":4.0,"availableBeds":2}`))
	require.NoError(t, err)

	property := models.Property{}
	require.NoError(t, applyChanges(&property, changes, 1))
	assert.Equal(t, 4, property.MaxCapacity)
	assert.Equal(t, 2, property.AvailableBeds)

	changes, err = decodePayload([]byte(`{"maxCapacity":4.5}`))
	require.NoError(t, err)
	assert.ErrorIs(t, applyChanges(&property, changes, 1), ErrValidationFailed)
}

func TestSubmitUpdateChecksOwnership(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow(3, 2))

	_, err := NewChangeRequestService(db).SubmitUpdate(1, 3, []byte(`{"city":"Pune"}`))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitUpdateStoresPayloadUntouched(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}).AddRow(3, 1))
	mock.ExpectQuery(`INSERT INTO "change_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	payload := []byte(`{"rentAmount":"not a number"}`)
	// type errors surface at approval time, not submission
	request, err := NewChangeRequestService(db).SubmitUpdate(1, 3, payload)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.JSONEq(t, string(payload), string(request.Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitCreateMakesPlaceholder(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO "change_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	request, err := NewChangeRequestService(db).SubmitCreate(1, []byte(`{"propertyName":"Sunrise PG"}`))

	require.NoError(t, err)
	assert.Equal(t, models.ChangeTypeCreate, request.ChangeType)
	assert.Equal(t, uint(5), request.PropertyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAlreadyDecided(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "change_requests" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "change_type", "status"}).
			AddRow(11, 3, models.ChangeTypeUpdate, models.RequestStatusApproved))
	mock.ExpectRollback()

	_, err := NewChangeRequestService(db).Approve(11)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAppliesPayloadToProperty(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "change_requests" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "change_type", "status", "payload"}).
			AddRow(11, 3, models.ChangeTypeUpdate, models.RequestStatusPending,
				[]byte(`{"rentAmount":13500,"city":"Pune"}`)))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "city", "rent_amount", "status"}).
			AddRow(3, 1, "Mumbai", 9000, models.PropertyStatusActive))
	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "change_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	request, err := NewChangeRequestService(db).Approve(11)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveCreateActivatesListing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "change_requests" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "change_type", "status", "payload"}).
			AddRow(11, 5, models.ChangeTypeCreate, models.RequestStatusPending,
				[]byte(`{"propertyName":"Sunrise PG","rentAmount":9500}`)))
	mock.ExpectQuery(`SELECT \* FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "status"}).
			AddRow(5, 1, models.PropertyStatusPending))
	mock.ExpectExec(`UPDATE "properties" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "change_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	request, err := NewChangeRequestService(db).Approve(11)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectLeavesPropertyAlone(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "change_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "change_type", "status"}).
			AddRow(11, 3, models.ChangeTypeUpdate, models.RequestStatusPending))
	mock.ExpectExec(`UPDATE "change_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	request, err := NewChangeRequestService(db).Reject(11)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, request.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
