package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-land-rentals/internal/domain"
	"github.com/feral-file/ff-land-rentals/internal/store/schema"
)

// PostgreSQL error code for unique_violation
const uniqueViolationCode = "23505"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// MaxIdleConns must not exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// IsOpenRentalConflict reports whether err is a violation of the one open rental per asset index
func IsOpenRentalConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == schema.OpenRentalUniqueIndex
}

// WithTx runs fn inside a transaction
func (s *pgStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// GetWatermark returns the watermark of a job
func (s *pgStore) GetWatermark(ctx context.Context, updateType domain.UpdateType) (time.Time, error) {
	var update schema.Update
	err := s.db.WithContext(ctx).Where("type = ?", updateType).First(&update).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Unix(0, 0).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("failed to get watermark: %w", err)
	}

	return update.UpdatedAt.UTC(), nil
}

// SetWatermark advances the watermark of a job, keeping the newest value on conflict
func (s *pgStore) SetWatermark(ctx context.Context, updateType domain.UpdateType, updatedAt time.Time) error {
	update := schema.Update{
		Type:      updateType,
		UpdatedAt: updatedAt,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"updated_at": gorm.Expr("GREATEST(updates.updated_at, EXCLUDED.updated_at)"),
		}),
	}).Create(&update).Error
	if err != nil {
		return fmt.Errorf("failed to set watermark: %w", err)
	}

	return nil
}

// GetMetadataByID retrieves an asset metadata row
func (s *pgStore) GetMetadataByID(ctx context.Context, id string) (*schema.Metadata, error) {
	var metadata schema.Metadata
	err := s.db.WithContext(ctx).Where("id = ?", strings.ToLower(id)).First(&metadata).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	return &metadata, nil
}

// GetMetadataByIDs retrieves the metadata rows among ids
func (s *pgStore) GetMetadataByIDs(ctx context.Context, ids []string) (map[string]*schema.Metadata, error) {
	result := make(map[string]*schema.Metadata, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []schema.Metadata
	if err := s.db.WithContext(ctx).Where("id IN ?", lowerAll(ids)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	for i := range rows {
		result[rows[i].ID] = &rows[i]
	}
	return result, nil
}

func metadataFromInput(input MetadataInput) schema.Metadata {
	return schema.Metadata{
		ID:              strings.ToLower(input.ID),
		Category:        input.Category,
		SearchText:      input.SearchText,
		DistanceToPlaza: input.DistanceToPlaza,
		AdjacentToRoad:  input.AdjacentToRoad,
		EstateSize:      input.EstateSize,
		CreatedAt:       input.CreatedAt,
		UpdatedAt:       input.UpdatedAt,
	}
}

// InsertMetadata inserts an asset metadata row unless it already exists
func (s *pgStore) InsertMetadata(ctx context.Context, input MetadataInput) error {
	metadata := metadataFromInput(input)

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&metadata).Error
	if err != nil {
		return fmt.Errorf("failed to insert metadata: %w", err)
	}

	return nil
}

// UpdateMetadata overwrites every field of an asset metadata row
func (s *pgStore) UpdateMetadata(ctx context.Context, input MetadataInput) error {
	metadata := metadataFromInput(input)

	err := s.db.WithContext(ctx).Model(&schema.Metadata{}).
		Where("id = ?", metadata.ID).
		Updates(map[string]interface{}{
			"category":          metadata.Category,
			"search_text":       metadata.SearchText,
			"distance_to_plaza": metadata.DistanceToPlaza,
			"adjacent_to_road":  metadata.AdjacentToRoad,
			"estate_size":       metadata.EstateSize,
			"created_at":        metadata.CreatedAt,
			"updated_at":        metadata.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// CreateRental inserts a rental, its parties and its periods.
// Callers wrap it in WithTx together with the metadata insert.
func (s *pgStore) CreateRental(ctx context.Context, input CreateRentalInput) (string, error) {
	db := s.db.WithContext(ctx)
	id := uuid.NewString()

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := input.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	rental := schema.Rental{
		ID:                    id,
		MetadataID:            strings.ToLower(input.MetadataID),
		Network:               input.Network,
		ChainID:               input.ChainID,
		Expiration:            input.Expiration,
		Signature:             input.Signature,
		Nonces:                datatypes.JSONSlice[string](input.Nonces),
		TokenID:               input.TokenID,
		ContractAddress:       strings.ToLower(input.ContractAddress),
		RentalContractAddress: strings.ToLower(input.RentalContractAddress),
		Status:                input.Status,
		Target:                strings.ToLower(input.Target),
		RentedDays:            input.RentedDays,
		StartedAt:             input.StartedAt,
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
	}
	if err := db.Create(&rental).Error; err != nil {
		return "", fmt.Errorf("failed to create rental: %w", err)
	}

	var tenant *string
	if input.Tenant != nil {
		lowered := strings.ToLower(*input.Tenant)
		tenant = &lowered
	}
	listing := schema.RentalListing{
		ID:     id,
		Lessor: strings.ToLower(input.Lessor),
		Tenant: tenant,
	}
	if err := db.Create(&listing).Error; err != nil {
		return "", fmt.Errorf("failed to create rental listing: %w", err)
	}

	if len(input.Periods) > 0 {
		periods := make([]schema.Period, len(input.Periods))
		for i, p := range input.Periods {
			periods[i] = schema.Period{
				RentalID:    id,
				MinDays:     p.MinDays,
				MaxDays:     p.MaxDays,
				PricePerDay: p.PricePerDay,
			}
		}
		if err := db.Create(&periods).Error; err != nil {
			return "", fmt.Errorf("failed to create periods: %w", err)
		}
	}

	return id, nil
}

// rentalListingRow is one row of a listings read
type rentalListingRow struct {
	ID                    string                      `gorm:"column:id"`
	MetadataID            string                      `gorm:"column:metadata_id"`
	Category              domain.NFTCategory          `gorm:"column:category"`
	SearchText            string                      `gorm:"column:search_text"`
	MetadataCreatedAt     time.Time                   `gorm:"column:metadata_created_at"`
	Network               domain.Network              `gorm:"column:network"`
	ChainID               domain.ChainID              `gorm:"column:chain_id"`
	Expiration            time.Time                   `gorm:"column:expiration"`
	Signature             string                      `gorm:"column:signature"`
	Nonces                datatypes.JSONSlice[string] `gorm:"column:nonces"`
	TokenID               string                      `gorm:"column:token_id"`
	ContractAddress       string                      `gorm:"column:contract_address"`
	RentalContractAddress string                      `gorm:"column:rental_contract_address"`
	Lessor                string                      `gorm:"column:lessor"`
	Tenant                *string                     `gorm:"column:tenant"`
	Status                domain.RentalStatus         `gorm:"column:status"`
	CreatedAt             time.Time                   `gorm:"column:created_at"`
	UpdatedAt             time.Time                   `gorm:"column:updated_at"`
	StartedAt             *time.Time                  `gorm:"column:started_at"`
	RentedDays            *int                        `gorm:"column:rented_days"`
	PeriodChosen          *int64                      `gorm:"column:period_chosen"`
	Target                string                      `gorm:"column:target"`
	TotalCount            uint64                      `gorm:"column:total_count"`
}

func (r rentalListingRow) toDomain(periods []domain.Period) domain.RentalListing {
	if periods == nil {
		periods = []domain.Period{}
	}
	return domain.RentalListing{
		ID:                    r.ID,
		Category:              r.Category,
		SearchText:            r.SearchText,
		Network:               r.Network,
		ChainID:               r.ChainID,
		Expiration:            r.Expiration.UTC(),
		Signature:             r.Signature,
		Nonces:                []string(r.Nonces),
		TokenID:               r.TokenID,
		ContractAddress:       r.ContractAddress,
		RentalContractAddress: r.RentalContractAddress,
		Lessor:                r.Lessor,
		Tenant:                r.Tenant,
		Status:                r.Status,
		CreatedAt:             r.CreatedAt.UTC(),
		UpdatedAt:             r.UpdatedAt.UTC(),
		StartedAt:             r.StartedAt,
		RentedDays:            r.RentedDays,
		PeriodChosen:          r.PeriodChosen,
		Target:                r.Target,
		Periods:               periods,
	}
}

// GetRentalListingByID retrieves a joined listing by rental id
func (s *pgStore) GetRentalListingByID(ctx context.Context, id string) (*domain.RentalListing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var rows []rentalListingRow
	err := s.db.WithContext(ctx).Raw(`SELECT `+listingColumns+`
	`+listingJoins+`
	WHERE rentals.id = $1
	GROUP BY rentals.id, rentals_listings.id, metadata.id`, id).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rental listing: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	periods, err := s.getPeriods(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	listing := rows[0].toDomain(periods[id])
	return &listing, nil
}

// getPeriods loads the periods of the given rentals keyed by rental id
func (s *pgStore) getPeriods(ctx context.Context, rentalIDs []string) (map[string][]domain.Period, error) {
	result := make(map[string][]domain.Period, len(rentalIDs))
	if len(rentalIDs) == 0 {
		return result, nil
	}

	var periods []schema.Period
	err := s.db.WithContext(ctx).
		Where("rental_id IN ?", rentalIDs).
		Order("id ASC").
		Find(&periods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get periods: %w", err)
	}

	for _, p := range periods {
		result[p.RentalID] = append(result[p.RentalID], domain.Period{
			MinDays:     p.MinDays,
			MaxDays:     p.MaxDays,
			PricePerDay: p.PricePerDay,
		})
	}
	return result, nil
}

// GetRentalBySignature retrieves the newest rental carrying the signature
func (s *pgStore) GetRentalBySignature(ctx context.Context, signature string) (*schema.Rental, error) {
	var rental schema.Rental
	err := s.db.WithContext(ctx).
		Where("signature = ?", strings.ToLower(signature)).
		Order("created_at DESC").
		First(&rental).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rental by signature: %w", err)
	}

	return &rental, nil
}

// GetOpenRentalsByMetadataIDs retrieves the open rentals of the given assets
func (s *pgStore) GetOpenRentalsByMetadataIDs(ctx context.Context, metadataIDs []string) ([]OpenRental, error) {
	if len(metadataIDs) == 0 {
		return []OpenRental{}, nil
	}

	var rentals []OpenRental
	err := s.db.WithContext(ctx).Table("rentals").
		Select("rentals.id, rentals.metadata_id, rentals_listings.lessor, rentals.expiration").
		Joins("INNER JOIN rentals_listings ON rentals_listings.id = rentals.id").
		Where("rentals.status = ? AND rentals.metadata_id IN ?", domain.RentalStatusOpen, lowerAll(metadataIDs)).
		Scan(&rentals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get open rentals: %w", err)
	}

	return rentals, nil
}

// ExecuteRental records the on-chain execution of a rental. A claimed rental is
// never moved back to executed and its tenant is left as is.
// The chosen period is the one bracketing the rented days at the executed price.
func (s *pgStore) ExecuteRental(ctx context.Context, input ExecuteRentalInput) error {
	db := s.db.WithContext(ctx)

	statement := `UPDATE rentals SET
			status = ?,
			started_at = ?,
			updated_at = ?,
			rented_days = ?,
			period_chosen = (
				SELECT periods.id FROM periods
				WHERE periods.rental_id = rentals.id
					AND periods.min_days <= ?
					AND periods.max_days >= ?
					AND periods.price_per_day = ?::numeric
				ORDER BY periods.id
				LIMIT 1
			)
		WHERE id = ?`
	if input.Status != domain.RentalStatusClaimed {
		statement += " AND status <> '" + string(domain.RentalStatusClaimed) + "'"
	}

	result := db.Exec(statement,
		input.Status, input.StartedAt, input.UpdatedAt, input.RentedDays,
		input.RentedDays, input.RentedDays, input.PricePerDay,
		input.RentalID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to update executed rental: %w", result.Error)
	}
	// a claimed rental keeps its parties
	if result.RowsAffected == 0 {
		return nil
	}

	err := db.Model(&schema.RentalListing{}).
		Where("id = ?", input.RentalID).
		Update("tenant", strings.ToLower(input.Tenant)).Error
	if err != nil {
		return fmt.Errorf("failed to update rental tenant: %w", err)
	}

	return nil
}

// cancel moves the open rentals matched by the scope to cancelled
func (s *pgStore) cancel(ctx context.Context, at time.Time, scope func(db *gorm.DB) *gorm.DB) (int64, error) {
	db := s.db.WithContext(ctx).Model(&schema.Rental{}).Where("rentals.status = ?", domain.RentalStatusOpen)
	result := scope(db).Updates(map[string]interface{}{
		"status":     domain.RentalStatusCancelled,
		"updated_at": at,
	})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CancelRentals cancels the given rentals that are still open
func (s *pgStore) CancelRentals(ctx context.Context, ids []string, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.cancel(ctx, at, func(db *gorm.DB) *gorm.DB {
		return db.Where("rentals.id IN ?", ids)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to cancel rentals: %w", err)
	}
	return n, nil
}

// CancelExpiredRentals cancels every open rental that expired before now
func (s *pgStore) CancelExpiredRentals(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.cancel(ctx, now, func(db *gorm.DB) *gorm.DB {
		return db.Where("rentals.expiration < ?", now)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to cancel expired rentals: %w", err)
	}
	return n, nil
}

// CancelRentalsByContractIndex cancels open rentals with a stale contract nonce
func (s *pgStore) CancelRentalsByContractIndex(ctx context.Context, newIndex string, at time.Time) (int64, error) {
	n, err := s.cancel(ctx, at, func(db *gorm.DB) *gorm.DB {
		return db.Where("(rentals.nonces->>0)::numeric < ?::numeric", newIndex)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to cancel rentals by contract index: %w", err)
	}
	return n, nil
}

// CancelRentalsBySignerIndex cancels open rentals of a signer with a stale signer nonce
func (s *pgStore) CancelRentalsBySignerIndex(ctx context.Context, signer string, newIndex string, at time.Time) (int64, error) {
	n, err := s.cancel(ctx, at, func(db *gorm.DB) *gorm.DB {
		return db.
			Where("(rentals.nonces->>1)::numeric < ?::numeric", newIndex).
			Where("rentals.id IN (SELECT id FROM rentals_listings WHERE lessor = ?)", strings.ToLower(signer))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to cancel rentals by signer index: %w", err)
	}
	return n, nil
}

// CancelRentalsByAssetIndex cancels open rentals of a signer's asset with a stale asset nonce
func (s *pgStore) CancelRentalsByAssetIndex(ctx context.Context, contractAddress, tokenID, signer string, newIndex string, at time.Time) (int64, error) {
	n, err := s.cancel(ctx, at, func(db *gorm.DB) *gorm.DB {
		return db.
			Where("rentals.contract_address = ? AND rentals.token_id = ?", strings.ToLower(contractAddress), tokenID).
			Where("(rentals.nonces->>2)::numeric < ?::numeric", newIndex).
			Where("rentals.id IN (SELECT id FROM rentals_listings WHERE lessor = ?)", strings.ToLower(signer))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to cancel rentals by asset index: %w", err)
	}
	return n, nil
}

// GetRentalListings runs a listings read built by BuildRentalListingsQuery
func (s *pgStore) GetRentalListings(ctx context.Context, query domain.RentalsListingsQuery) ([]domain.RentalListing, uint64, error) {
	q := BuildRentalListingsQuery(query)

	var rows []rentalListingRow
	if err := s.db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get rental listings: %w", err)
	}
	if len(rows) == 0 {
		return []domain.RentalListing{}, 0, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	periods, err := s.getPeriods(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	listings := make([]domain.RentalListing, len(rows))
	for i, row := range rows {
		listings[i] = row.toDomain(periods[row.ID])
	}

	return listings, rows[0].TotalCount, nil
}

// GetRentalListingsPrices returns the number of open periods per price
func (s *pgStore) GetRentalListingsPrices(ctx context.Context, filter domain.RentalsListingsPricesFilterBy) ([]domain.PriceCount, error) {
	q := BuildRentalListingsPricesQuery(filter)

	var rows []struct {
		PricePerDay string `gorm:"column:price_per_day"`
		Count       uint64 `gorm:"column:count"`
	}
	if err := s.db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get rental listings prices: %w", err)
	}

	prices := make([]domain.PriceCount, len(rows))
	for i, row := range rows {
		prices[i] = domain.PriceCount{
			PricePerDay: row.PricePerDay,
			Count:       row.Count,
		}
	}
	return prices, nil
}
