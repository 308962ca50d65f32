package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseProfessionType(t *testing.T) {
	for _, professionType := range AllProfessionTypes() {
		parsed, err := ParseProfessionType(string(professionType))
		if err != nil {
			t.Errorf("ParseProfessionType(%q) unexpected error: %v", professionType, err)
		}
		if parsed != professionType {
			t.Errorf("ParseProfessionType(%q) = %q", professionType, parsed)
		}
	}

	if _, err := ParseProfessionType("plumbing"); err == nil {
		t.Error("expected error for unknown profession type")
	}
}

func TestDefaultRates(t *testing.T) {
	tests := []struct {
		professionType ProfessionType
		rate           float64
	}{
		{ProfessionCleaning, 1.0},
		{ProfessionBasicRepair, 1.5},
		{ProfessionHomeTutoring, 2.0},
		{ProfessionDocumentation, 1.8},
		{ProfessionCooking, 1.2},
	}

	for _, tt := range tests {
		t.Run(string(tt.professionType), func(t *testing.T) {
			want, _ := NewISURateFromFloat(tt.rate)
			if got := tt.professionType.DefaultRate(); !got.Equal(want) {
				t.Errorf("DefaultRate() = %s, want %s", got, want)
			}
		})
	}
}

func TestStandardUpdateRate(t *testing.T) {
	rate, _ := NewISURateFromFloat(1.5)
	standard := NewProfessionStandard(ProfessionBasicRepair, rate, "", "admin-1")

	// An identical rate is a no-op and must be rejected before any change.
	same, _ := NewISURateFromFloat(1.5)
	if err := standard.UpdateRate(same, "", "admin-1"); err == nil {
		t.Fatal("expected error for identical rate")
	}
	if !standard.Rate.Equal(rate) {
		t.Errorf("rate changed after rejected update: %s", standard.Rate)
	}

	higher, _ := NewISURateFromFloat(2.0)
	if err := standard.UpdateRate(higher, "market correction", "decider-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !standard.Rate.Equal(higher) {
		t.Errorf("rate = %s, want %s", standard.Rate, higher)
	}
	if standard.UpdatedBy != "decider-1" {
		t.Errorf("UpdatedBy = %s, want decider-1", standard.UpdatedBy)
	}
}

func TestStandardCalculateTotal(t *testing.T) {
	rate, _ := NewISURateFromFloat(2.0)
	standard := NewProfessionStandard(ProfessionHomeTutoring, rate, "", "admin-1")

	total, err := standard.CalculateTotal(decimal.NewFromFloat(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := NewISUFromFloat(6)
	if !total.Equal(want) {
		t.Errorf("total = %s, want %s", total, want)
	}

	standard.Deactivate("admin-1")
	if _, err := standard.CalculateTotal(decimal.NewFromFloat(3)); err == nil {
		t.Error("inactive standard should not price work")
	}
}

func TestMemberCanManageProfession(t *testing.T) {
	admin := NewMember("admin@example.com", "admin", "hash")
	admin.PromoteToAdmin()
	decider := NewMember("decider@example.com", "decider", "hash")
	decider.PromoteToDecider([]ProfessionType{ProfessionCleaning, ProfessionCooking})
	regular := NewMember("regular@example.com", "regular", "hash")

	tests := []struct {
		name           string
		member         *Member
		professionType ProfessionType
		want           bool
	}{
		{"admin manages everything", admin, ProfessionDocumentation, true},
		{"decider manages assigned type", decider, ProfessionCleaning, true},
		{"decider manages other assigned type", decider, ProfessionCooking, true},
		{"decider cannot manage unassigned type", decider, ProfessionDocumentation, false},
		{"regular manages nothing", regular, ProfessionCleaning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.member.CanManageProfession(tt.professionType); got != tt.want {
				t.Errorf("CanManageProfession(%s) = %v, want %v", tt.professionType, got, tt.want)
			}
		})
	}
}

func TestMemberRoleTransitions(t *testing.T) {
	member := NewMember("m@example.com", "m", "hash")
	if !member.IsActive() || member.Role != RoleRegular {
		t.Fatal("new members start active and regular")
	}

	member.PromoteToDecider([]ProfessionType{ProfessionCleaning})
	if !member.IsDecider() || len(member.ManagedProfessions) != 1 {
		t.Error("promotion to decider should set the managed set")
	}

	member.PromoteToAdmin()
	if !member.IsAdmin() || member.ManagedProfessions != nil {
		t.Error("promotion to admin should clear the managed set")
	}

	member.DemoteToRegular()
	if member.Role != RoleRegular || member.ManagedProfessions != nil {
		t.Error("demotion should clear role and managed set")
	}

	member.Ban()
	if member.IsActive() {
		t.Error("banned members are not active")
	}
}
