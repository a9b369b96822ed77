package handlers

import (
	"time"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

// Money leaves the API as fixed two-digit strings so no client parses it
// through a float.

type transactionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Amount          string    `json:"amount"`
	Description     string    `json:"description"`
	AppliedRounding string    `json:"appliedRounding"`
	SavedAmount     string    `json:"savedAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toTransaction(t entity.Transaction) transactionResponse {
	return transactionResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Amount:          t.Amount.StringFixed(2),
		Description:     t.Description,
		AppliedRounding: t.AppliedRounding.StringFixed(2),
		SavedAmount:     t.SavedAmount.StringFixed(2),
		CreatedAt:       t.CreatedAt,
	}
}

func toTransactions(in []entity.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(in))
	for _, t := range in {
		out = append(out, toTransaction(t))
	}
	return out
}

type savingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSavings(in []entity.Saving) []savingResponse {
	out := make([]savingResponse, 0, len(in))
	for _, s := range in {
		out = append(out, savingResponse{
			ID:        s.ID,
			UserID:    s.UserID,
			Total:     s.Total.StringFixed(2),
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	TotalSaved string    `json:"totalSaved"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toUser(u *entity.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		TotalSaved: u.TotalSaved.StringFixed(2),
		Currency:   u.Currency,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type goalResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  string    `json:"targetAmount"`
	CurrentAmount string    `json:"currentAmount"`
	Progress      string    `json:"progress"`
	Deadline      *string   `json:"deadline"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toGoal(g entity.SavingsGoal) goalResponse {
	out := goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Progress:      g.Progress().StringFixed(0),
		Status:        string(g.Status),
		CreatedAt:     g.CreatedAt,
	}
	if g.Deadline != nil {
		d := g.Deadline.Format(dateLayout)
		out.Deadline = &d
	}
	return out
}

const dateLayout = "2006-01-02"
