package catalog

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pafinder/internal/program"
)

func fixture() []program.Program {
	rows := []program.RawRow{
		{program.ColumnName: "Acme PA", program.ColumnState: "TX", program.ColumnGRERequirement: "Required", program.ColumnGPARequirement: "3.0", program.ColumnStartDate: "6/1/2026"},
		{program.ColumnName: "Beta PA", program.ColumnState: "CA", program.ColumnGRERequirement: "Not Required", program.ColumnGPARequirement: "3.0", program.ColumnStartDate: ""},
		{program.ColumnName: "Gamma PA", program.ColumnState: "TX", program.ColumnPACATRequirement: "Required", program.ColumnGPARequirement: "3.2", program.ColumnStartDate: "5/15/2026"},
		{program.ColumnName: "Delta PA", program.ColumnState: "", program.ColumnGPARequirement: "", program.ColumnClinicalHours: "500"},
		{program.ColumnName: "Epsilon PA", program.ColumnState: "tx", program.ColumnClinicalHours: "500", program.ColumnStartDate: "5/1/2026"},
	}
	return program.NormalizeAll(rows)
}

func names(ps []program.Program) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestApply_InactiveReturnsEverything(t *testing.T) {
	records := fixture()

	got := Apply(records, FilterState{})

	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("inactive filter changed the set (-want +got):\n%s", diff)
	}
}

func TestApply_ExactMatch(t *testing.T) {
	records := fixture()

	tests := []struct {
		name   string
		filter FilterState
		want   []string
	}{
		{"state is case sensitive", FilterState{State: "TX"}, []string{"Acme PA", "Gamma PA"}},
		{"lowercase state", FilterState{State: "tx"}, []string{"Epsilon PA"}},
		{"min gpa", FilterState{MinGPA: "3.0"}, []string{"Acme PA", "Beta PA"}},
		{"start month", FilterState{StartMonth: "May"}, []string{"Gamma PA", "Epsilon PA"}},
		{"unknown month", FilterState{StartMonth: program.UnknownMonth}, []string{"Beta PA", "Delta PA"}},
		{"clinical hours", FilterState{HealthcareExperience: "500"}, []string{"Delta PA", "Epsilon PA"}},
		{"degree", FilterState{DegreeOffered: "Masters"}, []string{"Acme PA", "Beta PA", "Gamma PA", "Delta PA", "Epsilon PA"}},
		{"degree no match", FilterState{DegreeOffered: "Doctorate"}, []string{}},
		{"combined", FilterState{State: "TX", MinGPA: "3.2"}, []string{"Gamma PA"}},
		{"no gre", FilterState{ExcludeGRERequired: true}, []string{"Beta PA", "Gamma PA", "Delta PA", "Epsilon PA"}},
		{"no pa-cat", FilterState{ExcludePACATRequired: true}, []string{"Acme PA", "Beta PA", "Delta PA", "Epsilon PA"}},
		{"both exclusions", FilterState{ExcludeGRERequired: true, ExcludePACATRequired: true}, []string{"Beta PA", "Delta PA", "Epsilon PA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(records, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	records := fixture()
	f := FilterState{State: "TX", ExcludePACATRequired: true}

	once := Apply(records, f)
	twice := Apply(once, f)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second application changed the result (-once +twice):\n%s", diff)
	}
}

func TestApply_Monotonic(t *testing.T) {
	records := fixture()
	base := FilterState{}
	baseLen := len(Apply(records, base))

	for _, f := range Fields {
		for _, v := range UniqueValues(records, f) {
			narrowed := base.With(f, v)
			assert.LessOrEqual(t, len(Apply(records, narrowed)), baseLen, "%s=%s", f, v)

			for _, e := range Exclusions {
				both := narrowed.WithExclusion(e, true)
				assert.LessOrEqual(t, len(Apply(records, both)), len(Apply(records, narrowed)))
			}
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := fixture()
	snapshot := append([]program.Program(nil), records...)

	got := Apply(records, FilterState{State: "CA"})
	require.Len(t, got, 1)
	got[0].Name = "changed"

	if diff := cmp.Diff(snapshot, records); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestFilterState_CopyAndReplace(t *testing.T) {
	initial := FilterState{}
	next := initial.With(FieldState, "TX").WithExclusion(ExcludeGRERequired, true)

	assert.False(t, initial.IsActive())
	assert.True(t, next.IsActive())
	assert.Equal(t, "TX", next.Get(FieldState))
	assert.True(t, next.Excludes(ExcludeGRERequired))
	assert.False(t, next.Excludes(ExcludePACATRequired))

	cleared := next.With(FieldState, "").WithExclusion(ExcludeGRERequired, false)
	assert.Equal(t, FilterState{}, cleared)
}

func TestUniqueValues(t *testing.T) {
	records := fixture()

	assert.Equal(t, []string{"CA", "TX", "tx"}, UniqueValues(records, FieldState))
	assert.Equal(t, []string{"3.0", "3.2"}, UniqueValues(records, FieldMinGPA))
	assert.Equal(t, []string{"June", "May", program.UnknownMonth}, UniqueValues(records, FieldStartMonth))
	assert.Equal(t, []string{"Masters"}, UniqueValues(records, FieldDegreeOffered))
	assert.Empty(t, UniqueValues(nil, FieldState))

	for _, f := range Fields {
		vals := UniqueValues(records, f)
		assert.True(t, sort.StringsAreSorted(vals), "%s not sorted", f)
		for i, v := range vals {
			assert.NotEmpty(t, v)
			if i > 0 {
				assert.NotEqual(t, vals[i-1], v, "%s has duplicates", f)
			}
		}
	}
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(fixture())

	require.Len(t, opts, len(Fields))
	assert.Equal(t, []string{"500"}, opts[FieldHealthcareExperience])
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.Key())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseField("tuition")
	assert.Error(t, err)
}
