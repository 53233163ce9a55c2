// Package metrics defines the aggregate queries behind each report sheet.
package metrics

import (
	"context"
	"fmt"
	"slices"

	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/models"
)

// Query is a static aggregation producing one report table.
type Query struct {
	// Name identifies the metric in logs and errors.
	Name string
	// SQL is the read-only statement; it has no bound parameters.
	SQL string
	// Columns is the expected projection, in order.
	Columns []string
}

// Runner executes a named query and returns its table.
type Runner interface {
	Query(ctx context.Context, name, sql string) (*models.ReportTable, error)
}

// TopSongsLimit caps the number of rows of the top songs report.
const TopSongsLimit = 100

// ArtistMinTracks is the exclusive lower bound on an artist's track count.
const ArtistMinTracks = 5

// CustomersPerCountry counts customers per country, largest first, ties alphabetical.
var CustomersPerCountry = Query{
	Name: "CustomersPerCountry",
	SQL: `SELECT customers.Country, count(customers.CustomerId) AS CustomersCount
FROM customers
GROUP BY customers.Country
ORDER BY 2 DESC, 1`,
	Columns: []string{"Country", "CustomersCount"},
}

// TopSongsBySales sums invoice totals per track and keeps the best sellers.
// Ties on TotalSales come back in the database's natural order.
var TopSongsBySales = Query{
	Name: "Top100SongsBySales",
	SQL: fmt.Sprintf(`SELECT tracks.Name AS Song, artists.Name AS Artist, albums.Title AS Album, sum(invoices.Total) AS TotalSales
FROM invoices
INNER JOIN invoice_items ON invoices.InvoiceId = invoice_items.InvoiceId
INNER JOIN tracks ON invoice_items.TrackId = tracks.TrackId
INNER JOIN albums ON tracks.AlbumId = albums.AlbumId
INNER JOIN artists ON albums.ArtistId = artists.ArtistId
GROUP BY invoice_items.TrackId
ORDER BY TotalSales DESC
LIMIT %d`, TopSongsLimit),
	Columns: []string{"Song", "Artist", "Album", "TotalSales"},
}

// ArtistCatalogPrice prices each artist's full catalog, for artists with more than five tracks.
var ArtistCatalogPrice = Query{
	Name: "ArtistCatalogPrice",
	SQL: fmt.Sprintf(`SELECT artists.Name AS ArtistName, count(tracks.TrackId) AS TotalSongs, sum(tracks.UnitPrice) AS TotalPrice
FROM tracks
INNER JOIN albums ON tracks.AlbumId = albums.AlbumId
INNER JOIN artists ON albums.ArtistId = artists.ArtistId
GROUP BY artists.Name
HAVING TotalSongs > %d
ORDER BY TotalPrice DESC`, ArtistMinTracks),
	Columns: []string{"ArtistName", "TotalSongs", "TotalPrice"},
}

// SongsByGenre counts tracks per genre, largest first.
var SongsByGenre = Query{
	Name: "SongsByGenre",
	SQL: `SELECT genres.Name, count(tracks.TrackId) AS Songs
FROM tracks
INNER JOIN genres ON tracks.GenreId = genres.GenreId
GROUP BY genres.Name
ORDER BY Songs DESC`,
	Columns: []string{"Name", "Songs"},
}

// All returns the queries in report order.
func All() []Query {
	return []Query{CustomersPerCountry, TopSongsBySales, ArtistCatalogPrice, SongsByGenre}
}

// Run executes q and checks the returned projection.
func Run(ctx context.Context, r Runner, q Query) (*models.ReportTable, error) {
	table, err := r.Query(ctx, q.Name, q.SQL)
	if err != nil {
		return nil, err
	}
	if got := table.ColumnNames(); !slices.Equal(got, q.Columns) {
		return nil, fmt.Errorf("unexpected columns %v, want %v", got, q.Columns)
	}
	return table, nil
}
