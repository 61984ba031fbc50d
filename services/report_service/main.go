package report_service

import (
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

var CacheExpiration = 5 * time.Minute

// MonthlyBucket accumulates one yyyy-mm worth of movement.
type MonthlyBucket struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategorySlice is one {name, value} pair of a per-kind breakdown.
type CategorySlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

const uncategorizedLabel = "uncategorized"

// BucketMonthly groups transactions by the calendar month of their
// transaction date. Keys are zero-padded yyyy-mm, so the tree's string
// order is chronological.
func BucketMonthly(transactions []models.FinanceTransaction) []MonthlyBucket {
	tree := redblacktree.NewWith(utils.StringComparator)

	for _, transaction := range transactions {
		month := transaction.TransactionDate.Format("2006-01")

		var bucket *MonthlyBucket
		if found, ok := tree.Get(month); ok {
			bucket = found.(*MonthlyBucket)
		} else {
			bucket = &MonthlyBucket{
				Month:    month,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			tree.Put(month, bucket)
		}

		switch transaction.Kind {
		case types.KindIncome:
			bucket.Income = bucket.Income.Add(transaction.Amount)
		case types.KindExpense:
			bucket.Expenses = bucket.Expenses.Add(transaction.Amount)
		}
	}

	buckets := make([]MonthlyBucket, 0, tree.Size())
	for _, value := range tree.Values() {
		buckets = append(buckets, *value.(*MonthlyBucket))
	}

	return buckets
}

// BreakdownByCategory sums transaction amounts per category name.
// Untagged transactions and transactions pointing at a missing
// category resolve to the "uncategorized" slice, so every distinct
// name yields exactly one slice. The caller pre-filters to a single
// kind, so two same-named categories of different kinds can never
// land in one output.
func BreakdownByCategory(transactions []models.FinanceTransaction, names map[int64]string) []CategorySlice {
	tree := redblacktree.NewWith(utils.StringComparator)

	for _, transaction := range transactions {
		name := uncategorizedLabel
		if transaction.CategoryID.Valid {
			if resolved, ok := names[transaction.CategoryID.Int64]; ok {
				name = resolved
			}
		}

		if found, ok := tree.Get(name); ok {
			tree.Put(name, found.(decimal.Decimal).Add(transaction.Amount))
		} else {
			tree.Put(name, transaction.Amount)
		}
	}

	slices := make([]CategorySlice, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		slices = append(slices, CategorySlice{Name: it.Key().(string), Value: it.Value().(decimal.Decimal)})
	}

	return slices
}

func fetchTransactions(orgID int64, period types.Period, kind types.CategoryKind) ([]models.FinanceTransaction, error) {
	var transactions []models.FinanceTransaction

	tx := config.DataBase.
		Where("org_id = ?", orgID).
		Where("payment_status = ?", types.PaymentStatusCompleted).
		Where("transaction_date >= ? AND transaction_date <= ?", period.TimeFrom, period.TimeTo)

	if len(kind) > 0 {
		tx = tx.Where("kind = ?", kind)
	}

	if result := tx.Find(&transactions); result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

// FetchMonthly returns the org's month-bucketed income/expense series,
// read through the per-org cache.
func FetchMonthly(orgID int64, period types.Period) ([]MonthlyBucket, error) {
	period = period.OrDefault(time.Now())

	key := config.CacheKey(orgID, "reports:monthly", []string{
		period.TimeFrom.Format("2006-01-02"),
		period.TimeTo.Format("2006-01-02"),
	})

	cached := make([]MonthlyBucket, 0)
	if err := config.Redis.GetKey(key, &cached); err == nil {
		return cached, nil
	}

	transactions, err := fetchTransactions(orgID, period, "")
	if err != nil {
		return nil, err
	}

	buckets := BucketMonthly(transactions)

	if err := config.Redis.SetKey(key, buckets, CacheExpiration); err == nil {
		if err := config.Redis.TagKey(orgID, key); err != nil {
			config.Logger.Errorf("Failed to tag report cache key %s: %v", key, err)
		}
	}

	return buckets, nil
}

// FetchCategoryBreakdown returns one kind's per-category totals for
// proportional display. Values are local to the kind's own total.
func FetchCategoryBreakdown(orgID int64, period types.Period, kind types.CategoryKind) ([]CategorySlice, error) {
	period = period.OrDefault(time.Now())

	key := config.CacheKey(orgID, "reports:categories", []string{
		kind,
		period.TimeFrom.Format("2006-01-02"),
		period.TimeTo.Format("2006-01-02"),
	})

	cached := make([]CategorySlice, 0)
	if err := config.Redis.GetKey(key, &cached); err == nil {
		return cached, nil
	}

	transactions, err := fetchTransactions(orgID, period, kind)
	if err != nil {
		return nil, err
	}

	categories, err := models.ListCategories(orgID, kind)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	slices := BreakdownByCategory(transactions, names)

	if err := config.Redis.SetKey(key, slices, CacheExpiration); err == nil {
		if err := config.Redis.TagKey(orgID, key); err != nil {
			config.Logger.Errorf("Failed to tag report cache key %s: %v", key, err)
		}
	}

	return slices, nil
}
