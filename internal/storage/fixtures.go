package storage

import "time"

// FixtureUserID owns the seeded personal expenses in mock mode.
const FixtureUserID int64 = 1

// FixtureUser is the account the mock auth service signs in.
func FixtureUser() User {
	return NewUser(FixtureUserID, "test@example.com", "테스트 사용자", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
}

// FixtureExpenses is the sample trip the mock backend starts with. The same
// records seed both the public list and the personal collection.
func FixtureExpenses() []Expense {
	rows := []struct {
		id       int64
		date     string
		category string
		amount   float64
		payment  string
		note     string
	}{
		{1, "2024-01-15 10:00", "교통", 500, "현금", "지하철 요금"},
		{2, "2024-01-15 12:00", "식비", 3000, "현금", "라멘점 점심"},
		{3, "2024-01-15 14:30", "숙박", 15000, "신용카드", "도쿄 호텔 1박"},
		{4, "2024-01-15 16:00", "입장료", 2000, "신용카드", "도쿄 타워 입장료"},
		{5, "2024-01-15 18:00", "쇼핑", 8000, "신용카드", "기념품 구매"},
	}

	expenses := make([]Expense, 0, len(rows))
	for _, r := range rows {
		createdAt, _ := time.ParseInLocation(DateLayout, r.date, time.UTC)
		expenses = append(expenses, NewExpense(
			r.id,
			r.date,
			r.category,
			r.payment,
			r.note,
			r.amount,
			FixtureUserID,
			false,
			createdAt,
			createdAt,
		))
	}

	return expenses
}
