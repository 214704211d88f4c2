package builder

import (
	"testing"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "name").From("employee").Where("id = ?", "e0001").Build()
		expected := "SELECT id, name FROM employee WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != "e0001" {
			t.Errorf("expected args [e0001], got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("employee", "id", "login").Values("e0001", "hpotter").Build()
		expected := "INSERT INTO employee (id, login) VALUES ($1, $2)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "e0001" || args[1] != "hpotter" {
			t.Errorf("expected args [e0001 hpotter], got %v", args)
		}
	})

	t.Run("Update", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Update("employee").Set("login", "ronwl").Set("name", "Ron").Where("id = ?", "e0002").Build()
		expected := "UPDATE employee SET login = $1, name = $2 WHERE id = $3"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 3 || args[0] != "ronwl" || args[2] != "e0002" {
			t.Errorf("expected args [ronwl Ron e0002], got %v", args)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Delete("employee").Where("id = ?", "e0003").Build()
		expected := "DELETE FROM employee WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 {
			t.Errorf("expected 1 arg, got %v", args)
		}
	})
}

func TestSQLBuilderFiltersAndPaging(t *testing.T) {
	t.Run("Where conditions are combined with AND", func(t *testing.T) {
		query, args := NewSQLBuilder().Select("*").
			From("employee").
			Where("salary >= ?", 0).
			Where("salary < ?", 4000).
			Build()

		expected := "SELECT * FROM employee WHERE salary >= $1 AND salary < $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %d: %v", len(args), args)
		}
	})

	t.Run("WhereIf skips false conditions", func(t *testing.T) {
		query, args := NewSQLBuilder().Select("*").
			From("employee").
			WhereIf(false, "id = ?", "e0001").
			WhereIf(true, "login = ?", "hpotter").
			Build()

		expected := "SELECT * FROM employee WHERE login = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != "hpotter" {
			t.Errorf("expected args [hpotter], got %v", args)
		}
	})

	t.Run("Limit zero is kept", func(t *testing.T) {
		query, _ := NewSQLBuilder().Select("id").From("employee").Limit(0).Build()
		expected := "SELECT id FROM employee LIMIT 0"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("No limit without call", func(t *testing.T) {
		query, _ := NewSQLBuilder().Select("id").From("employee").Offset(3).Build()
		expected := "SELECT id FROM employee OFFSET 3"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("Order, limit and offset", func(t *testing.T) {
		query, _ := NewSQLBuilder().Select("id").
			From("employee").
			OrderBy("salary DESC").
			OrderBy("id ASC").
			Limit(10).
			Offset(2).
			Build()
		expected := "SELECT id FROM employee ORDER BY salary DESC, id ASC LIMIT 10 OFFSET 2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})
}

func TestEscapeLike(t *testing.T) {
	testCases := map[string]string{
		"Harry":     "Harry",
		"50%":       `50\%`,
		"a_b":       `a\_b`,
		`back\path`: `back\\path`,
	}
	for in, want := range testCases {
		if got := EscapeLike(in); got != want {
			t.Errorf("EscapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
