// Package chinooktest builds small music-store databases for tests.
package chinooktest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Schema creates the tables read by the report queries.
const Schema = `
CREATE TABLE customers (CustomerId INTEGER PRIMARY KEY, Country TEXT);
CREATE TABLE invoices (InvoiceId INTEGER PRIMARY KEY, Total NUMERIC(10,2) NOT NULL);
CREATE TABLE invoice_items (InvoiceLineId INTEGER PRIMARY KEY AUTOINCREMENT, InvoiceId INTEGER NOT NULL, TrackId INTEGER NOT NULL);
CREATE TABLE artists (ArtistId INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE albums (AlbumId INTEGER PRIMARY KEY, Title TEXT NOT NULL, ArtistId INTEGER NOT NULL);
CREATE TABLE genres (GenreId INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE tracks (TrackId INTEGER PRIMARY KEY, Name TEXT NOT NULL, AlbumId INTEGER, GenreId INTEGER, UnitPrice NUMERIC(10,2) NOT NULL);
`

// Fixture is the content of a test database.
type Fixture struct {
	Customers    []Customer
	Invoices     []Invoice
	InvoiceItems []InvoiceItem
	Artists      []Artist
	Albums       []Album
	Genres       []Genre
	Tracks       []Track
}

type Customer struct {
	ID      int
	Country string
}

type Invoice struct {
	ID    int
	Total float64
}

type InvoiceItem struct {
	InvoiceID int
	TrackID   int
}

type Artist struct {
	ID   int
	Name string
}

type Album struct {
	ID       int
	Title    string
	ArtistID int
}

type Genre struct {
	ID   int
	Name string
}

type Track struct {
	ID        int
	Name      string
	AlbumID   int
	GenreID   int
	UnitPrice float64
}

// AddCustomers adds n customers living in country.
func (f *Fixture) AddCustomers(country string, n int) {
	for i := 0; i < n; i++ {
		f.Customers = append(f.Customers, Customer{ID: len(f.Customers) + 1, Country: country})
	}
}

// AddGenre adds a genre and returns its id.
func (f *Fixture) AddGenre(name string) int {
	id := len(f.Genres) + 1
	f.Genres = append(f.Genres, Genre{ID: id, Name: name})
	return id
}

// AddArtist adds an artist with one album holding n tracks of the given genre and price.
// It returns the ids of the new tracks.
func (f *Fixture) AddArtist(name string, n int, genreID int, price float64) []int {
	artistID := len(f.Artists) + 1
	f.Artists = append(f.Artists, Artist{ID: artistID, Name: name})

	albumID := len(f.Albums) + 1
	f.Albums = append(f.Albums, Album{ID: albumID, Title: name + " Greatest Hits", ArtistID: artistID})

	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		id := len(f.Tracks) + 1
		f.Tracks = append(f.Tracks, Track{
			ID:        id,
			Name:      fmt.Sprintf("%s Song %d", name, i+1),
			AlbumID:   albumID,
			GenreID:   genreID,
			UnitPrice: price,
		})
		ids = append(ids, id)
	}
	return ids
}

// AddInvoice adds an invoice with the given total containing the tracks.
func (f *Fixture) AddInvoice(total float64, trackIDs ...int) {
	id := len(f.Invoices) + 1
	f.Invoices = append(f.Invoices, Invoice{ID: id, Total: total})
	for _, trackID := range trackIDs {
		f.InvoiceItems = append(f.InvoiceItems, InvoiceItem{InvoiceID: id, TrackID: trackID})
	}
}

// Sample returns a small store exercising every report.
func Sample() Fixture {
	var f Fixture
	f.AddCustomers("USA", 5)
	f.AddCustomers("Canada", 5)
	f.AddCustomers("Brazil", 2)

	rock := f.AddGenre("Rock")
	jazz := f.AddGenre("Jazz")
	metal := f.AddGenre("Metal")

	acdc := f.AddArtist("AC/DC", 6, rock, 0.99)
	miles := f.AddArtist("Miles Davis", 5, jazz, 0.99)
	maiden := f.AddArtist("Iron Maiden", 8, metal, 1.99)
	f.AddArtist("Led Zeppelin", 1, rock, 0.99)

	f.AddInvoice(13.86, acdc[0], miles[0], maiden[0])
	f.AddInvoice(8.91, acdc[0], maiden[1])
	f.AddInvoice(1.98, miles[1])
	return f
}

// NewDB writes the fixture to a SQLite file in a temporary directory and returns its path.
func NewDB(t testing.TB, f Fixture) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chinook.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer db.Close()

	if err := Populate(db, f); err != nil {
		t.Fatalf("failed to populate fixture database: %v", err)
	}
	return path
}

// Populate creates the schema and inserts the fixture rows.
func Populate(db *sql.DB, f Fixture) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, c := range f.Customers {
		if _, err := tx.Exec(`INSERT INTO customers (CustomerId, Country) VALUES (?, ?)`, c.ID, c.Country); err != nil {
			return fmt.Errorf("insert customer %d: %w", c.ID, err)
		}
	}
	for _, inv := range f.Invoices {
		if _, err := tx.Exec(`INSERT INTO invoices (InvoiceId, Total) VALUES (?, ?)`, inv.ID, inv.Total); err != nil {
			return fmt.Errorf("insert invoice %d: %w", inv.ID, err)
		}
	}
	for _, it := range f.InvoiceItems {
		if _, err := tx.Exec(`INSERT INTO invoice_items (InvoiceId, TrackId) VALUES (?, ?)`, it.InvoiceID, it.TrackID); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	for _, a := range f.Artists {
		if _, err := tx.Exec(`INSERT INTO artists (ArtistId, Name) VALUES (?, ?)`, a.ID, a.Name); err != nil {
			return fmt.Errorf("insert artist %d: %w", a.ID, err)
		}
	}
	for _, al := range f.Albums {
		if _, err := tx.Exec(`INSERT INTO albums (AlbumId, Title, ArtistId) VALUES (?, ?, ?)`, al.ID, al.Title, al.ArtistID); err != nil {
			return fmt.Errorf("insert album %d: %w", al.ID, err)
		}
	}
	for _, g := range f.Genres {
		if _, err := tx.Exec(`INSERT INTO genres (GenreId, Name) VALUES (?, ?)`, g.ID, g.Name); err != nil {
			return fmt.Errorf("insert genre %d: %w", g.ID, err)
		}
	}
	for _, tr := range f.Tracks {
		if _, err := tx.Exec(`INSERT INTO tracks (TrackId, Name, AlbumId, GenreId, UnitPrice) VALUES (?, ?, ?, ?, ?)`,
			tr.ID, tr.Name, tr.AlbumID, tr.GenreID, tr.UnitPrice); err != nil {
			return fmt.Errorf("insert track %d: %w", tr.ID, err)
		}
	}

	return tx.Commit()
}
