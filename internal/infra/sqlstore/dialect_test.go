package sqlstore

import (
	"testing"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{driver: "", want: "sqlite3"},
		{driver: "sqlite", want: "sqlite3"},
		{driver: "SQLite3", want: "sqlite3"},
		{driver: "mysql", want: "mysql"},
		{driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			dialect, err := DialectFor(tt.driver)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialectFor(%q): %v", tt.driver, err)
			}
			if got := dialect.DriverName(); got != tt.want {
				t.Errorf("DriverName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDialectSQLiteDefaultPath(t *testing.T) {
	dsn, err := NewSQLiteDialect().DSN(DialectConfig{})
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if dsn != "wordquiz.db" {
		t.Errorf("DSN() = %v, want wordquiz.db", dsn)
	}
}

func TestDialectMySQLDSN(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("valid", func(t *testing.T) {
		dsn, err := dialect.DSN(DialectConfig{URL: "quiz:secret@tcp(localhost:3306)/wordquiz"})
		if err != nil {
			t.Fatalf("dsn: %v", err)
		}
		if dsn == "" {
			t.Error("expected formatted dsn")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := dialect.DSN(DialectConfig{URL: "not a dsn"}); err == nil {
			t.Error("expected error for malformed dsn")
		}
	})

	if got := dialect.MigrationsSubdir(); got != "mysql" {
		t.Errorf("MigrationsSubdir() = %v, want mysql", got)
	}
}
