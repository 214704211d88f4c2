package builder_test

import (
	"fmt"

	"github.com/locvowork/hrrecords/internal/repository/builder"
)

// Example_salaryRange shows the half-open salary filter used by employee queries.
func Example_salaryRange() {
	qb := builder.NewSQLBuilder().
		Select("id", "login", "name", "salary", "start_date").
		From("employee").
		Where("salary >= ?", 1000).
		Where("salary < ?", 4000).
		OrderBy("id ASC")

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: SELECT id, login, name, salary, start_date FROM employee WHERE salary >= $1 AND salary < $2 ORDER BY id ASC
	// Args: [1000 4000]
}

// Example_nameSearch shows an escaped substring match with paging.
func Example_nameSearch() {
	qb := builder.NewSQLBuilder().
		Select("id").
		From("employee").
		Where(`name LIKE ? ESCAPE '\'`, "%"+builder.EscapeLike("Harry")+"%").
		Limit(10).
		Offset(2)

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: SELECT id FROM employee WHERE name LIKE $1 ESCAPE '\' LIMIT 10 OFFSET 2
	// Args: [%Harry%]
}

// Example_update shows SET placeholders numbered before WHERE placeholders.
func Example_update() {
	sql, args := builder.NewSQLBuilder().
		Update("employee").
		Set("login", "hpotter").
		Set("name", "Harry Potter").
		Where("id = ?", "e0001").
		Build()

	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: UPDATE employee SET login = $1, name = $2 WHERE id = $3
	// Args: [hpotter Harry Potter e0001]
}
