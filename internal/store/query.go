package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// Query is a SQL statement using positional ($n) placeholders with its arguments in order
type Query struct {
	SQL  string
	Args []interface{}
}

// queryArgs accumulates bound arguments and hands out their placeholders
type queryArgs struct {
	values []interface{}
}

func (a *queryArgs) add(v interface{}) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

const listingColumns = `rentals.id,
		rentals.metadata_id,
		metadata.category,
		metadata.search_text,
		metadata.created_at AS metadata_created_at,
		rentals.network,
		rentals.chain_id,
		rentals.expiration,
		rentals.signature,
		rentals.nonces,
		rentals.token_id,
		rentals.contract_address,
		rentals.rental_contract_address,
		rentals_listings.lessor,
		rentals_listings.tenant,
		rentals.status,
		rentals.created_at,
		rentals.updated_at,
		rentals.started_at,
		rentals.rented_days,
		rentals.period_chosen,
		rentals.target,
		max(periods.price_per_day) AS max_price_per_day,
		min(periods.price_per_day) AS min_price_per_day`

const listingJoins = `FROM rentals
	INNER JOIN metadata ON metadata.id = rentals.metadata_id
	INNER JOIN rentals_listings ON rentals_listings.id = rentals.id
	LEFT JOIN periods ON periods.rental_id = rentals.id`

// BuildRentalListingsQuery builds the listings read.
// Filters are applied in a fixed order so placeholders are numbered deterministically:
// WHERE predicates, then HAVING price predicates, then LIMIT and OFFSET.
// Outside history mode only the newest matching listing of each asset is kept.
// Every row carries the total match count in total_count.
func BuildRentalListingsQuery(query domain.RentalsListingsQuery) Query {
	args := &queryArgs{}
	filter := query.FilterBy

	conditions := listingConditions(filter, args)
	having := priceConditions(filter, args)

	var inner strings.Builder
	inner.WriteString("SELECT ")
	if !query.History {
		inner.WriteString("DISTINCT ON (rentals.metadata_id) ")
	}
	inner.WriteString(listingColumns)
	inner.WriteString("\n\t")
	inner.WriteString(listingJoins)
	if len(conditions) > 0 {
		inner.WriteString("\n\tWHERE ")
		inner.WriteString(strings.Join(conditions, " AND "))
	}
	inner.WriteString("\n\tGROUP BY rentals.id, rentals_listings.id, metadata.id")
	if len(having) > 0 {
		inner.WriteString("\n\tHAVING ")
		inner.WriteString(strings.Join(having, " AND "))
	}
	if !query.History {
		inner.WriteString("\n\tORDER BY rentals.metadata_id, rentals.created_at DESC")
	}

	limit := args.add(query.NormalizedLimit())
	offset := args.add(query.Offset())

	sql := fmt.Sprintf(`SELECT listings.*, COUNT(*) OVER() AS total_count FROM (
	%s
) AS listings
ORDER BY %s
LIMIT %s OFFSET %s`, inner.String(), orderBy(query.SortBy, query.SortDirection), limit, offset)

	return Query{SQL: sql, Args: args.values}
}

// BuildRentalListingsPricesQuery builds the histogram of open period prices.
// Sorting and pagination do not apply.
func BuildRentalListingsPricesQuery(filter domain.RentalsListingsPricesFilterBy) Query {
	args := &queryArgs{}

	conditions := []string{"rentals.status = " + args.add(string(domain.RentalStatusOpen))}
	if filter.Category != nil {
		conditions = append(conditions, "metadata.category = "+args.add(string(*filter.Category)))
	}
	if filter.Network != nil {
		conditions = append(conditions, "rentals.network = "+args.add(string(*filter.Network)))
	}
	if len(filter.RentalDays) > 0 {
		conditions = append(conditions, rentalDaysCondition("periods", filter.RentalDays, args))
	}
	conditions = append(conditions, landConditions(filter.AdjacentToRoad,
		filter.MinDistanceToPlaza, filter.MaxDistanceToPlaza,
		filter.MinEstateSize, filter.MaxEstateSize, args)...)

	sql := fmt.Sprintf(`SELECT periods.price_per_day, COUNT(*) AS count
FROM periods
	INNER JOIN rentals ON rentals.id = periods.rental_id
	INNER JOIN metadata ON metadata.id = rentals.metadata_id
WHERE %s
GROUP BY periods.price_per_day`, strings.Join(conditions, " AND "))

	return Query{SQL: sql, Args: args.values}
}

func listingConditions(filter domain.RentalsListingsFilterBy, args *queryArgs) []string {
	var conditions []string

	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			statuses[i] = string(status)
		}
		conditions = append(conditions, "rentals.status = ANY("+args.add(statuses)+")")
	}
	if filter.Target != nil {
		conditions = append(conditions, "rentals.target = "+args.add(strings.ToLower(*filter.Target)))
	}
	if filter.UpdatedAfter != nil {
		conditions = append(conditions, "rentals.updated_at > "+args.add(*filter.UpdatedAfter))
	}
	if filter.TokenID != nil {
		conditions = append(conditions, "rentals.token_id = "+args.add(*filter.TokenID))
	}
	if len(filter.ContractAddresses) > 0 {
		conditions = append(conditions, "rentals.contract_address = ANY("+args.add(lowerAll(filter.ContractAddresses))+")")
	}
	if filter.Network != nil {
		conditions = append(conditions, "rentals.network = "+args.add(string(*filter.Network)))
	}
	if filter.Lessor != nil {
		conditions = append(conditions, "rentals_listings.lessor = "+args.add(strings.ToLower(*filter.Lessor)))
	}
	if filter.Tenant != nil {
		conditions = append(conditions, "rentals_listings.tenant = "+args.add(strings.ToLower(*filter.Tenant)))
	}
	if len(filter.NFTIDs) > 0 {
		conditions = append(conditions, "rentals.metadata_id = ANY("+args.add(lowerAll(filter.NFTIDs))+")")
	}
	if filter.Category != nil {
		conditions = append(conditions, "metadata.category = "+args.add(string(*filter.Category)))
	}
	if filter.Text != nil {
		conditions = append(conditions, "metadata.search_text ILIKE '%' || "+args.add(escapeLike(*filter.Text))+"::text || '%' ESCAPE '\\'")
	}
	conditions = append(conditions, landConditions(filter.AdjacentToRoad,
		filter.MinDistanceToPlaza, filter.MaxDistanceToPlaza,
		filter.MinEstateSize, filter.MaxEstateSize, args)...)
	if len(filter.RentalDays) > 0 {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM periods AS day_periods WHERE day_periods.rental_id = rentals.id AND "+
			rentalDaysCondition("day_periods", filter.RentalDays, args)+")")
	}

	return conditions
}

// landConditions renders the predicates shared by listings and prices, in this order:
// distance to plaza range, estate size range, adjacency to road
func landConditions(adjacentToRoad *bool, minDistance, maxDistance, minEstateSize, maxEstateSize *int, args *queryArgs) []string {
	var conditions []string
	if minDistance != nil {
		conditions = append(conditions, "metadata.distance_to_plaza >= "+args.add(*minDistance))
	}
	if maxDistance != nil {
		conditions = append(conditions, "metadata.distance_to_plaza <= "+args.add(*maxDistance))
	}
	if minEstateSize != nil {
		conditions = append(conditions, "metadata.estate_size >= "+args.add(*minEstateSize))
	}
	if maxEstateSize != nil {
		conditions = append(conditions, "metadata.estate_size <= "+args.add(*maxEstateSize))
	}
	if adjacentToRoad != nil {
		conditions = append(conditions, "metadata.adjacent_to_road = "+args.add(*adjacentToRoad))
	}
	return conditions
}

// rentalDaysCondition matches a period that brackets any of the requested day counts
func rentalDaysCondition(table string, days []int, args *queryArgs) string {
	clauses := make([]string, len(days))
	for i, d := range days {
		placeholder := args.add(d)
		clauses[i] = fmt.Sprintf("(%[1]s.min_days <= %[2]s AND %[1]s.max_days >= %[2]s)", table, placeholder)
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

func priceConditions(filter domain.RentalsListingsFilterBy, args *queryArgs) []string {
	var having []string
	if filter.MinPricePerDay != nil {
		having = append(having, "max(periods.price_per_day) >= "+args.add(*filter.MinPricePerDay)+"::numeric")
	}
	if filter.MaxPricePerDay != nil {
		having = append(having, "min(periods.price_per_day) <= "+args.add(*filter.MaxPricePerDay)+"::numeric")
	}
	return having
}

// orderBy renders the outer sort. The listing id breaks ties so pages are stable.
func orderBy(sortBy domain.SortBy, direction domain.SortDirection) string {
	dir := "ASC"
	if direction == domain.SortDirectionDesc {
		dir = "DESC"
	}

	var column string
	switch sortBy {
	case domain.SortByLandCreationDate:
		column = "listings.metadata_created_at"
	case domain.SortByName:
		column = "listings.search_text"
	case domain.SortByMaxRentalPrice:
		column = "listings.max_price_per_day"
	case domain.SortByMinRentalPrice:
		column = "listings.min_price_per_day"
	default:
		column = "listings.created_at"
	}

	return fmt.Sprintf("%s %s NULLS LAST, listings.id ASC", column, dir)
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the LIKE wildcards of a user supplied value match literally
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
