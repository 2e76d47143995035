package rfv_test

import (
	"context"
	"testing"

	"github.com/ethpandaops/rfv/internal/testutil"
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline() *rfv.Pipeline {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return rfv.NewPipeline(logger)
}

func findCustomer(t *testing.T, customers []rfv.Customer, id string) rfv.Customer {
	t.Helper()

	for _, c := range customers {
		if c.CustomerID == id {
			return c
		}
	}

	require.Failf(t, "customer not found", "id %s", id)

	return rfv.Customer{}
}

func TestPipeline_Run(t *testing.T) {
	ref := testutil.ReferenceDate
	purchases := append(testutil.Population(40),
		testutil.Purchase{Customer: "C1", DaysAgo: 10, Value: "10"},
		testutil.Purchase{Customer: "C1", DaysAgo: 5, Value: "20"},
		testutil.Purchase{Customer: "C1", DaysAgo: 0, Value: "30"},
		testutil.Purchase{Customer: "C2", DaysAgo: 100, Value: "5"},
	)

	result, err := newTestPipeline().Run(context.Background(), testutil.Transactions(ref, purchases...))
	require.NoError(t, err)

	assert.Equal(t, ref, result.ReferenceDate)
	assert.Equal(t, len(purchases), result.Transactions)
	assert.Len(t, result.Customers, 42)
	assert.Empty(t, result.Dropped)

	c1 := findCustomer(t, result.Customers, "C1")
	assert.Equal(t, 0, c1.RecencyDays)
	assert.Equal(t, 3, c1.Frequency)
	assert.True(t, decimal.NewFromInt(60).Equal(c1.Value))

	c2 := findCustomer(t, result.Customers, "C2")
	assert.Equal(t, 100, c2.RecencyDays)
	assert.Equal(t, 1, c2.Frequency)
	assert.True(t, decimal.NewFromInt(5).Equal(c2.Value))

	assert.Equal(t, rfv.GradeA, c1.RecencyGrade)
	assert.Less(t, c1.RecencyGrade, c2.RecencyGrade)
	assert.Less(t, c1.ValueGrade, c2.ValueGrade)
	assert.Equal(t, "ACB", c1.Score)
	assert.Equal(t, "DDD", c2.Score)
	assert.Equal(t, rfv.ActionFor("DDD"), c2.Action)

	assert.InDelta(t, 23.25, result.Quartiles.Recency.Q25, 1e-9)
	assert.InDelta(t, 3.0, result.Quartiles.Frequency.Q50, 1e-9)
	assert.InDelta(t, 90.0, result.Quartiles.Value.Q75, 1e-9)

	for i := 1; i < len(result.Customers); i++ {
		assert.Less(t, result.Customers[i-1].CustomerID, result.Customers[i].CustomerID)
	}

	for _, c := range result.Customers {
		assert.Len(t, c.Score, 3)
		assert.Regexp(t, "^[ABCD]{3}$", c.Score)
		assert.Equal(t, rfv.ActionFor(c.Score), c.Action)
	}
}

func TestPipeline_Run_CountsRecordsWithoutPurchaseCode(t *testing.T) {
	ref := testutil.ReferenceDate
	txs := testutil.Transactions(ref,
		testutil.Purchase{Customer: "C1", DaysAgo: 1, Value: "10", Code: "X1"},
		testutil.Purchase{Customer: "C1", DaysAgo: 2, Value: "10", Code: testutil.NoCode},
		testutil.Purchase{Customer: "C2", DaysAgo: 4, Value: "10", Code: testutil.NoCode},
	)

	result, err := newTestPipeline().Run(context.Background(), txs)
	require.NoError(t, err)

	require.Len(t, result.Customers, 2)
	assert.Empty(t, result.Dropped)

	c1 := findCustomer(t, result.Customers, "C1")
	assert.Equal(t, 2, c1.Frequency)

	c2 := findCustomer(t, result.Customers, "C2")
	assert.Equal(t, 1, c2.Frequency)
	assert.Equal(t, 4, c2.RecencyDays)
}

func TestPipeline_Run_EveryCustomerOnce(t *testing.T) {
	ref := testutil.ReferenceDate
	purchases := append(testutil.Population(30),
		testutil.Purchase{Customer: "P001", DaysAgo: 7, Value: "3", Code: testutil.NoCode},
		testutil.Purchase{Customer: "", DaysAgo: 0, Value: "9"},
	)
	txs := testutil.Transactions(ref, purchases...)

	result, err := newTestPipeline().Run(context.Background(), txs)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, tx := range txs {
		if tx.CustomerID != "" {
			counts[tx.CustomerID]++
		}
	}

	require.Len(t, result.Customers, len(counts))
	assert.Empty(t, result.Dropped)

	for _, c := range result.Customers {
		assert.Equal(t, counts[c.CustomerID], c.Frequency, c.CustomerID)
	}
}

func TestPipeline_Run_SingleCustomer(t *testing.T) {
	txs := testutil.Transactions(testutil.ReferenceDate,
		testutil.Purchase{Customer: "C1", DaysAgo: 0, Value: "10"},
	)

	result, err := newTestPipeline().Run(context.Background(), txs)
	require.NoError(t, err)

	require.Len(t, result.Customers, 1)
	assert.Equal(t, "ADD", result.Customers[0].Score)
	assert.Equal(t, rfv.DefaultAction, result.Customers[0].Action)
	assert.NotNil(t, result.Dropped)
}

func TestPipeline_Run_Errors(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		_, err := newTestPipeline().Run(context.Background(), nil)
		assert.ErrorIs(t, err, rfv.ErrEmptyLedger)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestPipeline().Run(ctx, testutil.Transactions(testutil.ReferenceDate,
			testutil.Purchase{Customer: "C1", Value: "1"},
		))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
