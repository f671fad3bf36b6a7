package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/table"
)

func measurementTable(t *testing.T) *table.Table {
	t.Helper()

	sex, err := table.NewColumn("Sex", explorer.TypeIDString, []explorer.Value{
		explorer.NewString("Female"), explorer.NewString("Male"),
		explorer.NewString("Female"), explorer.NewString("Male"),
		explorer.NewString("Female"),
	})
	require.NoError(t, err)
	weight, err := table.NewColumn("Brain Weight", explorer.TypeIDInt, []explorer.Value{
		explorer.NewInt(1200), explorer.NewInt(1400),
		explorer.NewInt(1100), explorer.NewNull(),
		explorer.NewInt(1150),
	})
	require.NoError(t, err)

	out, err := table.New([]table.Column{sex, weight})
	require.NoError(t, err)
	return out
}

func TestGroupByFirstSeenOrder(t *testing.T) {
	partition, err := GroupBy(measurementTable(t), "Sex")
	require.NoError(t, err)

	require.Equal(t, 2, partition.Len())
	assert.Equal(t, []explorer.Value{
		explorer.NewString("Female"), explorer.NewString("Male"),
	}, partition.Keys())
	assert.Equal(t, "Sex", partition.KeyColumn())

	females, ok := partition.Group(explorer.NewString("Female"))
	require.True(t, ok)
	assert.Equal(t, 3, females.RowCount())

	_, ok = partition.Group(explorer.NewString("Other"))
	assert.False(t, ok)
}

func TestGroupByPartitionsEveryRow(t *testing.T) {
	source := measurementTable(t)
	partition, err := GroupBy(source, "Sex")
	require.NoError(t, err)

	total := 0
	for i := 0; i < partition.Len(); i++ {
		total += partition.GroupAt(i).RowCount()
	}
	assert.Equal(t, source.RowCount(), total)
}

func TestGroupByRejectsFloatKeys(t *testing.T) {
	weight, err := table.NewColumn("Weight", explorer.TypeIDFloat, []explorer.Value{
		explorer.NewFloat(1.5),
	})
	require.NoError(t, err)
	source, err := table.New([]table.Column{weight})
	require.NoError(t, err)

	_, err = GroupBy(source, "Weight")
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Weight", mismatch.Column)
	assert.Equal(t, explorer.TypeIDFloat, mismatch.ColumnType)
}

func TestGroupByNullKeyGroup(t *testing.T) {
	region, err := table.NewColumn("Region", explorer.TypeIDString, []explorer.Value{
		explorer.NewString("MTG"), explorer.NewNull(), explorer.NewString("MTG"),
	})
	require.NoError(t, err)
	source, err := table.New([]table.Column{region})
	require.NoError(t, err)

	partition, err := GroupBy(source, "Region")
	require.NoError(t, err)

	// Null keys form their own group rather than disappearing.
	require.Equal(t, 2, partition.Len())
	nulls, ok := partition.Group(explorer.NewNull())
	require.True(t, ok)
	assert.Equal(t, 1, nulls.RowCount())
}

func TestAggregate(t *testing.T) {
	partition, err := GroupBy(measurementTable(t), "Sex")
	require.NoError(t, err)

	out, err := Aggregate(partition, []AggregateSpec{
		{Function: "count"},
		{Function: "count", Column: "Brain Weight"},
		{Function: "mean", Column: "Brain Weight"},
		{Function: "sum", Column: "Brain Weight"},
		{Function: "min", Column: "Brain Weight"},
		{Function: "max", Column: "Brain Weight"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Sex", "count", "count_Brain Weight", "mean_Brain Weight",
		"sum_Brain Weight", "min_Brain Weight", "max_Brain Weight",
	}, out.ColumnNames())
	require.Equal(t, 2, out.RowCount())

	assert.Equal(t, []explorer.Value{
		explorer.NewString("Female"), explorer.NewInt(3), explorer.NewInt(3),
		explorer.NewFloat(1150), explorer.NewInt(3450),
		explorer.NewInt(1100), explorer.NewInt(1200),
	}, out.Row(0))
	// The null weight still counts as a row but drops out of the cell
	// aggregates.
	assert.Equal(t, []explorer.Value{
		explorer.NewString("Male"), explorer.NewInt(2), explorer.NewInt(1),
		explorer.NewFloat(1400), explorer.NewInt(1400),
		explorer.NewInt(1400), explorer.NewInt(1400),
	}, out.Row(1))
}

func TestAggregateAllNullGroup(t *testing.T) {
	group, err := table.NewColumn("Group", explorer.TypeIDString, []explorer.Value{
		explorer.NewString("a"), explorer.NewString("a"),
	})
	require.NoError(t, err)
	value, err := table.NewColumn("Value", explorer.TypeIDInt, []explorer.Value{
		explorer.NewNull(), explorer.NewNull(),
	})
	require.NoError(t, err)
	source, err := table.New([]table.Column{group, value})
	require.NoError(t, err)

	partition, err := GroupBy(source, "Group")
	require.NoError(t, err)
	out, err := Aggregate(partition, []AggregateSpec{
		{Function: "sum", Column: "Value"},
		{Function: "count", Column: "Value"},
	})
	require.NoError(t, err)

	assert.True(t, out.Row(0)[1].IsNull())
	assert.Equal(t, explorer.NewInt(0), out.Row(0)[2])
}

func TestAggregateUnsupportedFunction(t *testing.T) {
	partition, err := GroupBy(measurementTable(t), "Sex")
	require.NoError(t, err)

	_, err = Aggregate(partition, []AggregateSpec{{Function: "median", Column: "Brain Weight"}})
	var unsupported *UnsupportedAggregateError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "median", unsupported.Function)
}

func TestAggregateOverloadMismatch(t *testing.T) {
	partition, err := GroupBy(measurementTable(t), "Sex")
	require.NoError(t, err)

	// There is no sum over strings.
	_, err = Aggregate(partition, []AggregateSpec{{Function: "sum", Column: "Sex"}})
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Sex", mismatch.Column)
}

func TestAggregateUnknownColumn(t *testing.T) {
	partition, err := GroupBy(measurementTable(t), "Sex")
	require.NoError(t, err)

	_, err = Aggregate(partition, []AggregateSpec{{Function: "sum", Column: "Braak"}})
	var unknown *table.UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Braak", unknown.Column)
}

func TestAggregateNeedsSpecs(t *testing.T) {
	partition, err := GroupBy(measurementTable(t), "Sex")
	require.NoError(t, err)

	_, err = Aggregate(partition, nil)
	assert.Error(t, err)
}
