package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	Category    string             `bson:"category"`
	ImageURL    string             `bson:"image_url,omitempty"`
	ImageBase64 string             `bson:"image_base64,omitempty"`
	OwnerID     primitive.ObjectID `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d productDoc) toDomain() *domain.Product {
	p := &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Category:    d.Category,
		OwnerID:     d.OwnerID.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.ImageURL != "" {
		p.Image.SetURL(d.ImageURL)
	} else if d.ImageBase64 != "" {
		p.Image.SetInline(d.ImageBase64)
	}
	return p
}

func toDoc(p *domain.Product) (productDoc, error) {
	owner, err := primitive.ObjectIDFromHex(p.OwnerID)
	if err != nil {
		return productDoc{}, fmt.Errorf("invalid owner id %q", p.OwnerID)
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		ImageURL:    p.Image.URL,
		ImageBase64: p.Image.Inline,
		OwnerID:     owner,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(p)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByID treats malformed ids the same as unknown ones: not found.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(p)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// buildListFilter translates the validated plan into a conjunctive bson
// document, starting from match-all and narrowing per present criterion.
// Search input goes through QuoteMeta so the match stays a literal
// substring; user input never reaches the regex engine as syntax.
func buildListFilter(f ports.ListProductsFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}

	if f.Category != "" {
		filter["category"] = f.Category
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

// List counts the matching documents and fetches one bounded page. The sort
// always carries an _id tie-break so pagination stays stable when the
// primary sort key ties.
func (r *ProductRepository) List(ctx context.Context, f ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildListFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	dir := -1
	if f.Asc {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: f.Sort, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode product: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

// Categories returns the distinct category values sorted ascending.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// InventoryValue sums price*quantity over all products.
func (r *ProductRepository) InventoryValue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"total_value": bson.M{"$sum": bson.M{"$multiply": bson.A{"$price", "$quantity"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("inventory value: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			TotalValue float64 `bson:"total_value"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode inventory value: %w", err)
		}
		return row.TotalValue, nil
	}
	return 0, cur.Err()
}

// CountByCategory groups products per category, most populous first.
func (r *ProductRepository) CountByCategory(ctx context.Context) ([]ports.CategoryCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":            "$category",
			"count":          bson.M{"$sum": 1},
			"total_quantity": bson.M{"$sum": "$quantity"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.CategoryCount
	for cur.Next(ctx) {
		var row struct {
			Category      string `bson:"_id"`
			Count         int64  `bson:"count"`
			TotalQuantity int64  `bson:"total_quantity"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode category count: %w", err)
		}
		out = append(out, ports.CategoryCount{Category: row.Category, Count: row.Count, TotalQuantity: row.TotalQuantity})
	}
	return out, cur.Err()
}

// LowStock returns up to limit products below the quantity threshold,
// lowest first, with an _id tie-break for deterministic ordering.
func (r *ProductRepository) LowStock(ctx context.Context, threshold int, limit int) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "quantity", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	return r.findAll(ctx, bson.M{"quantity": bson.M{"$lt": threshold}}, opts)
}

// Recent returns up to limit most recently created products.
func (r *ProductRepository) Recent(ctx context.Context, limit int) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return r.findAll(ctx, bson.M{}, opts)
}

func (r *ProductRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

// PriceHistogram buckets prices by the given lower bounds using $bucket.
// The returned slice has one count per boundary; the final entry is the
// open-ended overflow bucket.
func (r *ProductRepository) PriceHistogram(ctx context.Context, boundaries []float64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const overflowKey = "overflow"

	bounds := make(bson.A, len(boundaries))
	for i, b := range boundaries {
		bounds[i] = b
	}

	pipeline := mongo.Pipeline{
		{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$price",
			"boundaries": bounds,
			"default":    overflowKey,
			"output":     bson.M{"count": bson.M{"$sum": 1}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("price histogram: %w", err)
	}
	defer cur.Close(ctx)

	counts := make([]int64, len(boundaries))
	for cur.Next(ctx) {
		var row struct {
			ID    interface{} `bson:"_id"`
			Count int64       `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode histogram bucket: %w", err)
		}

		if row.ID == overflowKey {
			counts[len(counts)-1] = row.Count
			continue
		}
		lower, ok := numericBound(row.ID)
		if !ok {
			continue
		}
		for i := 0; i < len(boundaries)-1; i++ {
			if boundaries[i] == lower {
				counts[i] = row.Count
				break
			}
		}
	}
	return counts, cur.Err()
}

// numericBound normalizes the bson numeric types $bucket may emit for a
// boundary key.
func numericBound(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// EnsureIndexes creates the query-path indexes on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
