package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/pkg/testutil"
)

func TestStubCustomerBook_SeededProfilesAreValid(t *testing.T) {
	book := NewStubCustomerBook()
	ctx := context.Background()

	require.Len(t, book.CustomerIDs(), 12)
	for _, id := range book.CustomerIDs() {
		customer, err := book.GetCustomer(ctx, id)
		require.NoError(t, err, id)
		offer, err := book.GetOffer(ctx, id)
		require.NoError(t, err, id)
		_, err = model.NewCustomerProfile(customer, offer)
		assert.NoError(t, err, id)
	}
}

func TestStubCustomerBook_ReferenceCustomer(t *testing.T) {
	book := NewStubCustomerBook()
	ctx := context.Background()

	customer, err := book.GetCustomer(ctx, "CUST001")
	require.NoError(t, err)
	assert.Equal(t, "Rajesh Kumar", customer.Name)
	testutil.AssertDecimal(t, "85000", customer.MonthlySalary)
	assert.Equal(t, 780, customer.CreditScore)

	offer, err := book.GetOffer(ctx, "CUST001")
	require.NoError(t, err)
	testutil.AssertDecimal(t, "500000", offer.PreApprovedLimit)
	testutil.AssertDecimal(t, "11.5", offer.InterestRate)
	assert.Equal(t, 60, offer.MaxTenureMonths)

	checks, err := book.Check(ctx, "CUST001")
	require.NoError(t, err)
	assert.True(t, checks.Passed())
}

func TestStubCustomerBook_PendingKYC(t *testing.T) {
	checks, err := NewStubCustomerBook().Check(context.Background(), "CUST010")
	require.NoError(t, err)
	assert.Equal(t, []string{model.CheckIdentityPhone, model.CheckIdentityAddress}, checks.Failed())
}

func TestStubCustomerBook_UnknownCustomer(t *testing.T) {
	book := NewStubCustomerBook()
	ctx := context.Background()

	_, err := book.GetCustomer(ctx, "CUST999")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	_, err = book.GetOffer(ctx, "CUST999")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	_, err = book.Check(ctx, "CUST999")
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}
