package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
)

// SelectMealsToAllocate picks the unpaid meals a payment of amount covers.
//
// Unpaid meals are taken oldest first (ascending date, then ID), one per
// full mealPrice of amount, until the remainder is less than one price.
// Partial meals are not tracked. A non-positive price selects nothing.
// The input slice is not modified; the returned meals are copies with Paid set.
func SelectMealsToAllocate(meals []*models.MealRecord, amount, mealPrice decimal.Decimal) []*models.MealRecord {
	if !mealPrice.IsPositive() || !amount.IsPositive() {
		return nil
	}

	unpaid := make([]*models.MealRecord, 0, len(meals))
	for _, m := range meals {
		if !m.Paid {
			unpaid = append(unpaid, m)
		}
	}
	sort.SliceStable(unpaid, func(i, j int) bool {
		if unpaid[i].Date != unpaid[j].Date {
			return unpaid[i].Date < unpaid[j].Date
		}
		return unpaid[i].ID < unpaid[j].ID
	})

	var selected []*models.MealRecord
	remaining := amount
	for _, m := range unpaid {
		if remaining.LessThan(mealPrice) {
			break
		}
		paid := *m
		paid.Paid = true
		selected = append(selected, &paid)
		remaining = remaining.Sub(mealPrice)
	}

	return selected
}
