package domain

import "testing"

func newTestTransaction(t *testing.T, status TransactionStatus) *Transaction {
	t.Helper()
	amount, _ := NewISUFromFloat(10)
	tx, err := NewTransaction("buyer-1", "seller-1", "service-1", amount, "")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tx.Status = status
	return tx
}

func TestNewTransactionRejectsSelfDealing(t *testing.T) {
	amount, _ := NewISUFromFloat(10)
	if _, err := NewTransaction("member-1", "member-1", "service-1", amount, ""); err == nil {
		t.Error("expected error when buyer and seller are the same member")
	}
}

func TestTransactionLifecycle(t *testing.T) {
	tests := []struct {
		name       string
		from       TransactionStatus
		transition func(*Transaction) error
		want       TransactionStatus
		wantErr    bool
	}{
		{"confirm pending", TransactionPending, (*Transaction).Confirm, TransactionConfirmed, false},
		{"confirm confirmed", TransactionConfirmed, (*Transaction).Confirm, TransactionConfirmed, true},
		{"confirm completed", TransactionCompleted, (*Transaction).Confirm, TransactionCompleted, true},
		{"confirm cancelled", TransactionCancelled, (*Transaction).Confirm, TransactionCancelled, true},

		{"start confirmed", TransactionConfirmed, (*Transaction).Start, TransactionInProgress, false},
		{"start pending", TransactionPending, (*Transaction).Start, TransactionPending, true},
		{"start disputed", TransactionDisputed, (*Transaction).Start, TransactionDisputed, true},

		{"complete in progress", TransactionInProgress, (*Transaction).Complete, TransactionCompleted, false},
		{"complete pending", TransactionPending, (*Transaction).Complete, TransactionPending, true},
		{"complete confirmed", TransactionConfirmed, (*Transaction).Complete, TransactionConfirmed, true},
		{"complete completed", TransactionCompleted, (*Transaction).Complete, TransactionCompleted, true},

		{"cancel pending", TransactionPending, (*Transaction).Cancel, TransactionCancelled, false},
		{"cancel confirmed", TransactionConfirmed, (*Transaction).Cancel, TransactionCancelled, false},
		{"cancel in progress", TransactionInProgress, (*Transaction).Cancel, TransactionInProgress, true},
		{"cancel completed", TransactionCompleted, (*Transaction).Cancel, TransactionCompleted, true},

		{"dispute in progress", TransactionInProgress, (*Transaction).Dispute, TransactionDisputed, false},
		{"dispute pending", TransactionPending, (*Transaction).Dispute, TransactionPending, true},
		{"dispute completed", TransactionCompleted, (*Transaction).Dispute, TransactionCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newTestTransaction(t, tt.from)
			err := tt.transition(tx)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, transaction moved to %s", tx.Status)
				}
				if !IsValidation(err) {
					t.Errorf("error kind = %v, want validation", KindOf(err))
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// A rejected transition must leave the status unchanged.
			if tx.Status != tt.want {
				t.Errorf("status = %s, want %s", tx.Status, tt.want)
			}
		})
	}
}

func TestTransactionCompleteRecordsTime(t *testing.T) {
	tx := newTestTransaction(t, TransactionInProgress)
	if tx.CompletedAt != nil {
		t.Fatal("CompletedAt should start nil")
	}
	if err := tx.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.CompletedAt == nil {
		t.Error("CompletedAt should be set on completion")
	}
}

func TestTransactionParticipants(t *testing.T) {
	tx := newTestTransaction(t, TransactionPending)

	if !tx.IsParticipant("buyer-1") || !tx.IsParticipant("seller-1") {
		t.Error("buyer and seller are participants")
	}
	if tx.IsParticipant("stranger") {
		t.Error("strangers are not participants")
	}
	if !tx.IsBuyer("buyer-1") || tx.IsBuyer("seller-1") {
		t.Error("IsBuyer misidentifies the buyer")
	}
	if !tx.IsSeller("seller-1") || tx.IsSeller("buyer-1") {
		t.Error("IsSeller misidentifies the seller")
	}
}
