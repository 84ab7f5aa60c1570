package machdb

import (
	"testing"

	"github.com/freeeve/machdb/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineCreateInsertSelect(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE users (id INT, name VARCHAR(32), age INT)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO users VALUES (1,'Alice',25),(2,'Bob',30)")
	require.NoError(t, err)

	res, err := eng.ExecQuery("SELECT * FROM users")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.RowCount)
	assert.Equal(t, []string{"id", "name", "age"}, res.ColumnNames)
	assert.Equal(t, value.Str("Alice"), res.Values[0][1])
	assert.Equal(t, value.Str("Bob"), res.Values[1][1])
}

func TestEngineFilterAndLike(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE users (id INT, name VARCHAR(32), age INT)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO users VALUES (1,'Alice',25),(2,'Bob',30),(3,'Abel',40)")
	require.NoError(t, err)

	res, err := eng.ExecQuery("SELECT name FROM users WHERE name LIKE 'A%'")
	require.NoError(t, err)
	require.Equal(t, 2, res.RowCount)
}

func TestEngineAggregatesWithNull(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE a (id INT, v INT)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO a VALUES (1,10),(2,NULL),(3,20)")
	require.NoError(t, err)

	res, err := eng.ExecQuery("SELECT COUNT(*), COUNT(v), SUM(v), AVG(v), MIN(v), MAX(v) FROM a")
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	row := res.Values[0]
	assert.Equal(t, value.Int(3), row[0])
	assert.Equal(t, value.Int(2), row[1])
	assert.Equal(t, value.Float(30), row[2])
	assert.Equal(t, value.Float(15), row[3])
	assert.Equal(t, value.Float(10), row[4])
	assert.Equal(t, value.Float(20), row[5])
}

func TestEngineAggregatesDistinct(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE a (id INT, v INT)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO a VALUES (1,10),(2,10),(3,20)")
	require.NoError(t, err)

	res, err := eng.ExecQuery("SELECT COUNT(DISTINCT v), SUM(DISTINCT v) FROM a")
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	row := res.Values[0]
	assert.Equal(t, value.Int(2), row[0])
	assert.Equal(t, value.Float(30), row[1])
}

func TestEngineUpdatePreservesUnmatchedRows(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE p (id INT, price FLOAT)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO p VALUES (1,10.0),(2,20.0),(3,30.0)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("UPDATE p SET price = 0.0 WHERE price < 25.0")
	require.NoError(t, err)

	res, err := eng.ExecQuery("SELECT * FROM p ORDER BY id")
	require.NoError(t, err)
	require.Equal(t, 3, res.RowCount)
	assert.Equal(t, value.Float(0), res.Values[0][1])
	assert.Equal(t, value.Float(0), res.Values[1][1])
	assert.Equal(t, value.Float(30), res.Values[2][1])
}

func TestEngineLeftJoinNoMatch(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE u (id INT, name VARCHAR(32))")
	require.NoError(t, err)
	_, err = eng.ExecQuery("CREATE TABLE o (uid INT, amt INT)")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO u VALUES (1,'A'),(2,'B')")
	require.NoError(t, err)
	_, err = eng.ExecQuery("INSERT INTO o VALUES (1,100)")
	require.NoError(t, err)

	res, err := eng.ExecQuery("SELECT u.name, o.amt FROM u LEFT JOIN o ON u.id = o.uid")
	require.NoError(t, err)
	require.Equal(t, 2, res.RowCount)
	assert.Equal(t, value.Str("A"), res.Values[0][0])
	assert.Equal(t, value.Int(100), res.Values[0][1])
	assert.Equal(t, value.Str("B"), res.Values[1][0])
	assert.True(t, res.Values[1][1].IsNull())
}

func TestEngineResetClearsCatalog(t *testing.T) {
	eng := NewEngine()
	_, err := eng.ExecQuery("CREATE TABLE t (id INT)")
	require.NoError(t, err)
	eng.Reset()
	assert.Nil(t, eng.Catalog().GetTableByName("t"))
}
