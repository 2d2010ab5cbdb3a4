package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/pkg/structs"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"
)

// Tablename is the only table known by the console, the stored item list.
const Tablename = "items"

// Columns are the selectable item columns in declaration order.
var Columns = []string{"name", "category", "location", "date", "description", "image"}

type (
	// A Select contains all the parsed SQL data.
	Select struct {
		Columns []string
		Count   bool
		Matcher q.Matcher
		Skip    int
		// Limit is -1 without a LIMIT clause.
		Limit   int
		OrderBy []Order
	}

	// An Order is a sort key of a Select.
	Order struct {
		Field      string
		Descending bool
	}
)

// Parse parses the given SELECT statement.
func Parse(sql string) (*Select, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse SQL")
	}

	s, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, errors.New("not a select statement")
	}

	sc := Select{Limit: -1}

	// SELECT * ...
	// SELECT name,date ...
	// SELECT count(*) ...
	for _, se := range s.SelectExprs {
		switch v := se.(type) {
		case *sqlparser.StarExpr:
			sc.Columns = Columns
		case *sqlparser.AliasedExpr:
			switch v := v.Expr.(type) {
			case *sqlparser.ColName:
				column := strings.ToLower(v.Name.String())
				if _, err := field(column); err != nil {
					return nil, err
				}
				sc.Columns = append(sc.Columns, column)
			case *sqlparser.FuncExpr:
				if v.Name.Lowered() != "count" {
					return nil, errors.Errorf("unsupported function: %s", v.Name.String())
				}
				sc.Count = true
			default:
				return nil, errors.New("unsupported select expression")
			}
		default:
			return nil, errors.New("unsupported select expression")
		}
	}

	// FROM items
	if len(s.From) != 1 {
		return nil, errors.New("only one table can be queried")
	}
	table, ok := s.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.New("unsupported table expression")
	}
	if name := sqlparser.GetTableName(table.Expr).String(); name != Tablename {
		return nil, errors.Errorf("unknown tablename: %s", name)
	}

	// WHERE
	sc.Matcher = q.And()
	if s.Where != nil {
		if sc.Matcher, err = where(s.Where.Expr); err != nil {
			return nil, err
		}
	}

	// LIMIT 5
	// LIMIT 2,5
	if s.Limit != nil {
		if s.Limit.Offset != nil {
			if sc.Skip, err = integer(s.Limit.Offset); err != nil {
				return nil, err
			}
		}
		if sc.Limit, err = integer(s.Limit.Rowcount); err != nil {
			return nil, err
		}
	}

	// ORDER BY date
	// ORDER BY date DESC, name ASC
	for _, ob := range s.OrderBy {
		col, ok := ob.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("unsupported order expression")
		}

		f, err := field(col.Name.String())
		if err != nil {
			return nil, err
		}
		sc.OrderBy = append(sc.OrderBy, Order{
			Field:      f,
			Descending: ob.Direction == sqlparser.DescScr,
		})
	}

	return &sc, nil
}

// Match returns the items matching the WHERE clause in insertion order.
// Ordering and LIMIT are not applied.
func (s *Select) Match(items []model.Item) ([]model.Item, error) {
	selected := make([]model.Item, 0, len(items))
	for i := range items {
		ok, err := s.Matcher.Match(&items[i])
		if err != nil {
			return nil, errors.Wrap(err, "could not match item")
		}
		if ok {
			selected = append(selected, items[i])
		}
	}
	return selected, nil
}

// Run returns the items selected by the statement.
// Insertion order is kept unless an ORDER BY is given.
func (s *Select) Run(items []model.Item) ([]model.Item, error) {
	selected, err := s.Match(items)
	if err != nil {
		return nil, err
	}

	if len(s.OrderBy) > 0 {
		sort.SliceStable(selected, func(i, j int) bool {
			for _, o := range s.OrderBy {
				a := structs.GetField(selected[i], o.Field).(string)
				b := structs.GetField(selected[j], o.Field).(string)
				if a == b {
					continue
				}
				return (a < b) != o.Descending
			}
			return false
		})
	}

	if s.Skip >= len(selected) {
		return selected[:0], nil
	}
	selected = selected[s.Skip:]

	if s.Limit >= 0 && s.Limit < len(selected) {
		selected = selected[:s.Limit]
	}
	return selected, nil
}

// Rows projects the given items on the selected columns.
func (s *Select) Rows(items []model.Item) []map[string]any {
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := map[string]any{}
		for _, column := range s.Columns {
			f, _ := field(column)
			row[column] = structs.GetField(item, f)
		}
		rows = append(rows, row)
	}
	return rows
}

func where(expr sqlparser.Expr) (q.Matcher, error) {
	switch v := expr.(type) {
	case *sqlparser.ComparisonExpr:
		return comparison(v)
	case *sqlparser.IsExpr:
		col, ok := v.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.New("unsupported IS expression")
		}
		f, err := field(col.Name.String())
		if err != nil {
			return nil, err
		}

		// Absent item fields are stored as empty strings.
		switch v.Operator {
		case sqlparser.IsNullStr:
			return q.Eq(f, ""), nil
		case sqlparser.IsNotNullStr:
			return q.Not(q.Eq(f, "")), nil
		default:
			return nil, errors.Errorf("unsupported operator: %s", v.Operator)
		}
	case *sqlparser.AndExpr:
		left, err := where(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := where(v.Right)
		if err != nil {
			return nil, err
		}
		return q.And(left, right), nil
	case *sqlparser.OrExpr:
		left, err := where(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := where(v.Right)
		if err != nil {
			return nil, err
		}
		return q.Or(left, right), nil
	case *sqlparser.NotExpr:
		m, err := where(v.Expr)
		if err != nil {
			return nil, err
		}
		return q.Not(m), nil
	case *sqlparser.ParenExpr:
		return where(v.Expr)
	default:
		return nil, errors.Errorf("unsupported where expression: %s", sqlparser.String(expr))
	}
}

func comparison(v *sqlparser.ComparisonExpr) (q.Matcher, error) {
	col, ok := v.Left.(*sqlparser.ColName)
	if !ok {
		return nil, errors.New("left operand must be a column")
	}
	f, err := field(col.Name.String())
	if err != nil {
		return nil, err
	}

	var value any
	switch right := v.Right.(type) {
	case sqlparser.ValTuple:
		var tuple []any
		for _, e := range right {
			s, err := str(f, e)
			if err != nil {
				return nil, err
			}
			tuple = append(tuple, s)
		}
		value = tuple
	default:
		if value, err = str(f, right); err != nil {
			return nil, err
		}
	}

	switch v.Operator {
	case sqlparser.EqualStr:
		return q.Eq(f, value), nil
	case sqlparser.NotEqualStr:
		return q.Not(q.Eq(f, value)), nil
	case sqlparser.GreaterThanStr:
		return q.Gt(f, value), nil
	case sqlparser.GreaterEqualStr:
		return q.Gte(f, value), nil
	case sqlparser.LessThanStr:
		return q.Lt(f, value), nil
	case sqlparser.LessEqualStr:
		return q.Lte(f, value), nil
	case sqlparser.InStr:
		return q.In(f, value), nil
	case sqlparser.NotInStr:
		return q.Not(q.In(f, value)), nil
	case sqlparser.LikeStr:
		return q.Re(f, like(fmt.Sprint(value))), nil
	case sqlparser.NotLikeStr:
		return q.Not(q.Re(f, like(fmt.Sprint(value)))), nil
	case sqlparser.RegexpStr:
		return q.Re(f, fmt.Sprint(value)), nil
	default:
		return nil, errors.Errorf("unsupported operator: %s", v.Operator)
	}
}

// field returns the Item field name of the given column.
func field(column string) (string, error) {
	f, ok := structs.FieldByTag(model.Item{}, "json", strings.ToLower(column))
	if !ok {
		return "", errors.Errorf("unknown column: %s", column)
	}
	return f, nil
}

// str returns the string value compared to the given field.
// Dates are normalized so they compare with the stored ones.
func str(f string, expr sqlparser.Expr) (string, error) {
	v, ok := expr.(*sqlparser.SQLVal)
	if !ok {
		return "", errors.Errorf("unsupported value: %s", sqlparser.String(expr))
	}

	switch v.Type {
	case sqlparser.StrVal, sqlparser.IntVal, sqlparser.FloatVal:
	default:
		return "", errors.Errorf("unsupported value: %s", sqlparser.String(expr))
	}

	s := string(v.Val)
	if f == "Date" {
		if date, err := model.NormalizeDate(s); err == nil {
			return date, nil
		}
	}
	return s, nil
}

func integer(expr sqlparser.Expr) (int, error) {
	v, ok := expr.(*sqlparser.SQLVal)
	if !ok || v.Type != sqlparser.IntVal {
		return 0, errors.Errorf("not an integer: %s", sqlparser.String(expr))
	}

	n, err := strconv.Atoi(string(v.Val))
	return n, errors.Wrap(err, "could not parse integer")
}

// like converts a SQL LIKE pattern to an anchored regexp.
func like(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}
