package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/referrals/model"
	userModel "newmeclass_backend/internals/features/users/user/model"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	configs.ReferralBonus = 15000
	return dbtest.Open(t,
		&userModel.UserModel{},
		&model.ReferralTransactionModel{},
		&model.ReferralSettingsModel{},
	)
}

func newUser(t *testing.T, db *gorm.DB, email, code string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{ID: uuid.New(), Email: email, Password: "x", FullName: email, ReferralCode: code}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestRecordAndCreditReferral(t *testing.T) {
	db := setup(t)
	referrer := newUser(t, db, "a@example.com", "ANIS123ABC")
	referred := newUser(t, db, "b@example.com", "BUDI456DEF")

	found, err := FindReferrerByCode(db, " anis123abc ")
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, found.ID)

	_, err = FindReferrerByCode(db, "NOPE")
	assert.ErrorIs(t, err, ErrReferralCodeNotFound)

	_, err = RecordReferral(db, referrer, referrer)
	assert.ErrorIs(t, err, ErrSelfReferral)

	rt, err := RecordReferral(db, referrer, referred)
	require.NoError(t, err)
	assert.Equal(t, model.ReferralStatusPending, rt.Status)
	assert.EqualValues(t, 15000, rt.BonusAmount)

	var r userModel.UserModel
	require.NoError(t, db.First(&r, "id = ?", referrer.ID).Error)
	assert.Equal(t, 1, r.ReferralCount)
	assert.Zero(t, r.ReferralBalance)

	ok, err := CreditForUser(db, referred.ID, "NEWME-ORDER-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// kedua kali tidak dobel
	ok, err = CreditForUser(db, referred.ID, "NEWME-ORDER-2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.First(&r, "id = ?", referrer.ID).Error)
	assert.EqualValues(t, 15000, r.ReferralBalance)

	var saved model.ReferralTransactionModel
	require.NoError(t, db.First(&saved, "id = ?", rt.ID).Error)
	assert.Equal(t, model.ReferralStatusCredited, saved.Status)
	require.NotNil(t, saved.OrderID)
	assert.Equal(t, "NEWME-ORDER-1", *saved.OrderID)
}

func TestInactiveProgramRecordsZeroBonus(t *testing.T) {
	db := setup(t)
	_, err := SaveSettings(db, map[string]any{"is_active": false})
	require.NoError(t, err)

	referrer := newUser(t, db, "c@example.com", "CICI111AAA")
	referred := newUser(t, db, "d@example.com", "DODI222BBB")
	rt, err := RecordReferral(db, referrer, referred)
	require.NoError(t, err)
	assert.Zero(t, rt.BonusAmount)
}
