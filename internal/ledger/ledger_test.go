package ledger

import (
	"math"
	"testing"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		tipo       models.TransactionType
		amount     float64
		penalty    float64
		wantGroup  float64
		wantMember float64
		wantErr    bool
	}{
		{
			name:       "contribution with penalty",
			tipo:       models.TypeContribution,
			amount:     100,
			penalty:    10,
			wantGroup:  110,
			wantMember: -100,
		},
		{
			name:       "repayment folds penalty into group side only",
			tipo:       models.TypeRepayment,
			amount:     50,
			penalty:    5,
			wantGroup:  55,
			wantMember: -50,
		},
		{
			name:       "penalty movement",
			tipo:       models.TypePenalty,
			amount:     20,
			wantGroup:  20,
			wantMember: -20,
		},
		{
			name:       "loan moves money out of the pool",
			tipo:       models.TypeLoan,
			amount:     50,
			wantGroup:  -50,
			wantMember: 50,
		},
		{
			name:       "payout ignores penalty",
			tipo:       models.TypePayout,
			amount:     20,
			penalty:    3,
			wantGroup:  -20,
			wantMember: 20,
		},
		{
			name:       "zero amounts are allowed",
			tipo:       models.TypeContribution,
			amount:     0,
			penalty:    0,
			wantGroup:  0,
			wantMember: 0,
		},
		{
			name:    "unknown type rejected",
			tipo:    "transfer",
			amount:  10,
			wantErr: true,
		},
		{
			name:    "negative amount rejected",
			tipo:    models.TypeContribution,
			amount:  -1,
			wantErr: true,
		},
		{
			name:    "negative penalty rejected",
			tipo:    models.TypeContribution,
			amount:  1,
			penalty: -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.tipo, tt.amount, tt.penalty)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if math.Abs(got.Group-tt.wantGroup) > 1e-9 {
				t.Errorf("group delta = %v, want %v", got.Group, tt.wantGroup)
			}
			if math.Abs(got.Member-tt.wantMember) > 1e-9 {
				t.Errorf("member delta = %v, want %v", got.Member, tt.wantMember)
			}
		})
	}
}
