//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Blackhood910/data-generator/internal/dataset"
)

var (
	txt  = dataset.Text
	flt  = dataset.Float
	null = dataset.Null
	tm   = dataset.Time
	bl   = dataset.Bool
)

func num(i int) dataset.Value { return dataset.Int(int64(i)) }

// Platform codes, indexed by platform_id - 1.
var platformCodes = []string{"AMAZON", "EBAY", "WEBSITE"}

var categoryNames = []string{
	"Picture Frames", "Poster Frames", "Photo Frames", "Certificate Frames", "Collage Frames",
}

var (
	frameMaterials = []string{"MDF", "Solid Wood", "Aluminium"}
	frameFinishes  = []string{"Black", "White", "Oak", "Walnut", "Gold", "Silver", "Rustic"}
	frameProfiles  = []string{"Modern", "Classic", "Slim", "Box"}
	frameKinds     = []string{"Picture Frame", "Photo Frame", "Poster Frame", "Certificate Frame"}
	glazingTypes   = []string{"Acrylic", "Perspex", "Glass"}
	mountColors    = []string{"White", "Ivory", "Black", "No Mount"}
	backingTypes   = []string{"MDF Board", "Foam Board", "Card Backing"}
	orientations   = []string{"Portrait", "Landscape"}
	sizeCodes      = []string{"A1", "A2", "A3", "A4", "5x7", "8x10", "12x16", "16x20", "24x36"}
	sizeDimsMM     = map[string][2]int{
		"A1": {594, 841}, "A2": {420, 594}, "A3": {297, 420}, "A4": {210, 297},
		"5x7": {127, 178}, "8x10": {203, 254}, "12x16": {305, 406}, "16x20": {406, 508}, "24x36": {610, 914},
	}

	firstNames = []string{
		"Alex", "Sam", "Chris", "Jordan", "Taylor", "Morgan", "Casey", "Jamie", "Robin", "Avery",
		"Lee", "Dana", "Cameron", "Riley", "Jesse", "Sky", "Harper", "Quinn", "Rowan", "Sage",
	}
	lastNames = []string{
		"Smith", "Brown", "Taylor", "Wilson", "Thomson", "Anderson", "Jackson", "White", "Harris", "Martin",
		"Clarke", "Walker", "Young", "Wright", "King", "Green", "Hall", "Wood", "Lewis", "Scott",
	}
	regions = []string{
		"London", "Scotland", "Midlands", "North West", "South East",
		"Wales", "Northern Ireland", "South West", "North East", "Yorkshire",
	}
	ageGroups     = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
	genders       = []string{"F", "M", "Other", "Prefer not to say"}
	signupSources = []string{"Amazon", "eBay", "Website", "Facebook Ads", "Google Ads"}

	carriers      = []string{"DPD", "Royal Mail", "Evri"}
	orderStatuses = []string{"Pending", "Shipped", "Delivered", "Returned", "Cancelled"}

	reviewTitles = []string{
		"Great quality", "Value for money", "Looks premium",
		"Arrived damaged", "Not as described", "Perfect for my poster",
	}
	reviewBodies = []string{
		"Excellent build and finish.", "Good for the price.", "Cracked glass on arrival.",
		"Fits A3 perfectly.", "Colour slightly different.", "Mount included was useful.",
	}
)

var (
	orderStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orderEnd   = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
)

// Per-platform price adjustment and fees.
var (
	platformPriceFactor = map[string]float64{"AMAZON": 1.02, "EBAY": 0.99, "WEBSITE": 1.00}
	platformFeePercent  = map[string]float64{"AMAZON": 0.15, "EBAY": 0.12, "WEBSITE": 0.015}
	platformFlatFee     = map[string]float64{"AMAZON": 0, "EBAY": 0, "WEBSITE": 0.2}
)

type reference struct {
	brands, platforms, categories, accounts, fees *dataset.Dataset
}

func referenceTables() reference {
	r := reference{
		brands:     dataset.New("brands", "brand_id", "brand_name", "website_url"),
		platforms:  dataset.New("platforms", "platform_id", "platform_code", "platform_name", "region"),
		categories: dataset.New("categories", "category_id", "parent_category_id", "category_name", "category_path"),
		accounts:   dataset.New("marketplace_accounts", "account_id", "platform_id", "merchant_slug", "default_currency"),
		fees:       dataset.New("platform_fees", "platform_fee_id", "platform_id", "fee_type", "fee_percent", "fee_flat_amount"),
	}

	r.brands.Append(num(1), txt("Alison Kingsgate"), txt("https://www.alisonkingsgate.co.uk"))

	r.platforms.Append(num(1), txt("AMAZON"), txt("Amazon UK"), txt("UK"))
	r.platforms.Append(num(2), txt("EBAY"), txt("eBay UK"), txt("UK"))
	r.platforms.Append(num(3), txt("WEBSITE"), txt("AlisonKingsgate.co.uk"), txt("UK"))

	r.categories.Append(num(1), null(), txt("Picture Frames"), txt("Home > Frames"))
	for i, path := range []string{"Poster", "Photo", "Certificate", "Collage"} {
		r.categories.Append(num(i+2), num(1), txt(categoryNames[i+1]), txt("Home > Frames > "+path))
	}

	for id := 1; id <= len(platformCodes); id++ {
		r.accounts.Append(num(id), num(id), txt("alisonkingsgate"), txt("GBP"))
	}

	r.fees.Append(num(1), num(1), txt("Referral"), flt(0.15), flt(0))
	r.fees.Append(num(2), num(2), txt("FinalValueFee"), flt(0.12), flt(0))
	r.fees.Append(num(3), num(3), txt("Gateway"), flt(0.015), flt(0.2))
	return r
}

type product struct {
	id, categoryID          int
	sku, name, about, image string
	unitCost, listPrice     float64
	discounted, rating      float64
}

type catalog struct {
	products *dataset.Dataset
	variants *dataset.Dataset
	items    []product
	// variant ids per product id
	variantIDs map[int][]int
}

func (g *Generator) catalog() catalog {
	f := g.f
	c := catalog{
		products: dataset.New("products",
			"product_id", "sku", "product_name", "category_id", "brand_id",
			"actual_price", "discounted_price", "discount_percentage", "rating", "rating_count",
			"about_product", "img_link", "product_link", "status", "unit_cost", "default_list_price"),
		variants: dataset.New("product_variants",
			"variant_id", "product_id", "variant_sku", "size_code", "width_mm", "height_mm",
			"frame_material", "frame_finish", "frame_profile", "glazing_type",
			"mount_included_flag", "mount_color", "backing_type", "orientation",
			"unit_cost", "default_list_price", "weight_kg",
			"package_length_mm", "package_width_mm", "package_height_mm", "status"),
		variantIDs: make(map[int][]int, g.cfg.Products),
	}

	for pid := 1; pid <= g.cfg.Products; pid++ {
		name := fmt.Sprintf("%s %s %s", Choose(f, frameFinishes), Choose(f, frameProfiles), Choose(f, frameKinds))
		unitCost := Money(f.Float64(4, 45))
		listPrice := Money(unitCost * f.Float64(1.6, 2.8))
		disc := Clip(f.Normal(0.12, 0.08), 0, 0.4)
		discounted := Money(listPrice * (1 - disc))
		discPct := 0.0
		if listPrice != 0 {
			discPct = Round(1-discounted/listPrice, 4)
		}
		p := product{
			id:         pid,
			categoryID: f.Int(1, len(categoryNames)),
			sku:        fmt.Sprintf("AK-%04d", pid),
			name:       name,
			about:      fmt.Sprintf("High-quality %s suitable for home and office décor. Includes hanging hardware.", strings.ToLower(name)),
			image:      fmt.Sprintf("https://cdn.example/%s-%d.jpg", slugify(name), pid),
			unitCost:   unitCost,
			listPrice:  listPrice,
			discounted: discounted,
			rating:     Round(Clip(f.Normal(4.3, 0.4), 1, 5), 2),
		}
		c.items = append(c.items, p)
		c.products.Append(
			num(pid), txt(p.sku), txt(name), num(p.categoryID), num(1),
			flt(listPrice), flt(discounted), flt(discPct), flt(p.rating), num(f.Poisson(80)),
			txt(p.about), txt(p.image),
			txt(fmt.Sprintf("https://www.alisonkingsgate.co.uk/products/%s-%d", slugify(name), pid)),
			txt("ACTIVE"), flt(unitCost), flt(listPrice),
		)
	}

	vid := 1
	for _, p := range c.items {
		for _, sc := range Sample(f, sizeCodes, Choose(f, []int{2, 3, 3, 4})) {
			dims := sizeDimsMM[sc]
			c.variants.Append(
				num(vid), num(p.id), txt(p.sku+"-"+sc), txt(sc), num(dims[0]), num(dims[1]),
				txt(ChooseWeighted(f, frameMaterials, []int{60, 30, 10})),
				txt(Choose(f, frameFinishes)),
				txt(Choose(f, frameProfiles)),
				txt(ChooseWeighted(f, glazingTypes, []int{60, 25, 15})),
				bl(f.Chance(0.6)),
				txt(Choose(f, mountColors)),
				txt(Choose(f, backingTypes)),
				txt(Choose(f, orientations)),
				flt(Money(p.unitCost*(0.8+f.Float64(0, 0.6)))),
				flt(Money(p.listPrice*(0.8+f.Float64(0, 0.6)))),
				flt(Round(f.Float64(0.4, 3.5), 2)),
				num(dims[0]+30), num(dims[1]+30), num(Choose(f, []int{30, 40, 50})),
				txt("ACTIVE"),
			)
			c.variantIDs[p.id] = append(c.variantIDs[p.id], vid)
			vid++
		}
	}
	return c
}

type listings struct {
	listings, prices, inventory *dataset.Dataset
}

// listingID returns the id of the single listing of a product on a platform.
func listingID(productID, platformID int) int {
	return (productID-1)*len(platformCodes) + platformID
}

func (g *Generator) listings(c catalog) listings {
	f := g.f
	l := listings{
		listings: dataset.New("product_listings",
			"listing_id", "product_id", "variant_id", "platform_id", "account_id",
			"listing_sku", "title", "subtitle", "description_html", "bullets_json",
			"main_image_url", "additional_images_json",
			"amazon_asin", "amazon_marketplace_id", "amazon_fulfilment_channel",
			"ebay_item_id", "ebay_listing_type", "ebay_condition_id", "ebay_category_id", "is_active"),
		prices: dataset.New("listing_prices",
			"price_id", "listing_id", "currency", "listing_price", "sale_price", "valid_from", "valid_to"),
		inventory: dataset.New("channel_inventory",
			"channel_inventory_id", "listing_id", "on_hand_qty", "reserved_qty", "backorder_qty"),
	}

	bullets := mustJSON([]string{"Ready to hang", "Multiple sizes", "UK dispatch"})
	for _, p := range c.items {
		for i, code := range platformCodes {
			platformID := i + 1
			lid := listingID(p.id, platformID)
			base := p.discounted * platformPriceFactor[code]

			asin, marketplace, fulfilment := null(), null(), null()
			itemID, listingType, condition, ebayCategory := null(), null(), null(), null()
			switch code {
			case "AMAZON":
				asin = txt("B0" + f.RandomString(8, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"))
				marketplace = txt("A1F83G8C2ARO7P")
				fulfilment = txt(Choose(f, []string{"FBA", "FBM"}))
			case "EBAY":
				itemID = txt(f.Digits(12))
				listingType = txt("FixedPrice")
				condition = num(1000)
				ebayCategory = num(156389)
			}

			l.listings.Append(
				num(lid), num(p.id), null(), num(platformID), num(platformID),
				txt(p.sku+"-"+code), txt(p.name), txt(""), txt("<p>"+p.about+"</p>"), txt(bullets),
				txt(p.image), txt(mustJSON([]string{p.image})),
				asin, marketplace, fulfilment,
				itemID, listingType, condition, ebayCategory, bl(true),
			)

			l.prices.Append(num(l.prices.Len()+1), num(lid), txt("GBP"),
				flt(Money(base)), flt(Money(base)), txt("2025-06-01"), txt("2025-09-01"))
			l.prices.Append(num(l.prices.Len()+1), num(lid), txt("GBP"),
				flt(Money(base+float64(Choose(f, []int{0, 1, 2})))),
				flt(Money(base+float64(Choose(f, []int{0, 1})))),
				txt("2025-09-01"), null())

			l.inventory.Append(num(l.inventory.Len()+1), num(lid),
				num(f.Int(5, 200)), num(f.Int(0, 10)), num(Choose(f, []int{0, 0, 0, 1, 2})))
		}
	}
	return l
}

func (g *Generator) customers() *dataset.Dataset {
	f := g.f
	ds := dataset.New("customers",
		"customer_id", "first_name", "last_name", "email", "phone", "gender", "age_group",
		"region", "signup_source", "preferred_platform", "repeat_customer_flag")
	for cid := 1; cid <= g.cfg.Customers; cid++ {
		fn, ln := Choose(f, firstNames), Choose(f, lastNames)
		ds.Append(
			num(cid), txt(fn), txt(ln),
			txt(strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", fn, ln, cid))),
			txt(fmt.Sprintf("+44 7%d", f.Int(100000000, 999999999))),
			txt(Choose(f, genders)),
			txt(ChooseWeighted(f, ageGroups, []int{10, 25, 22, 20, 15, 8})),
			txt(Choose(f, regions)),
			txt(Choose(f, signupSources)),
			txt(ChooseWeighted(f, platformCodes, []int{55, 15, 30})),
			bl(f.Chance(0.30)),
		)
	}
	return ds
}

type sales struct {
	orders, items, fees, payments, shipments, returns, returnItems *dataset.Dataset
}

type orderLine struct {
	id, quantity int
	unitPrice    float64
}

func (g *Generator) orders(c catalog) sales {
	f := g.f
	s := sales{
		orders: dataset.New("orders",
			"order_id", "order_number", "order_date", "order_date_only", "order_time_only",
			"platform_id", "account_id", "customer_id", "currency",
			"subtotal_amount", "discount_amount", "tax_amount", "shipping_amount",
			"channel_fee_amount", "total_amount", "order_status", "delivery_days"),
		items: dataset.New("order_items",
			"order_item_id", "order_id", "line_number", "product_id", "variant_id", "listing_id",
			"quantity", "unit_price", "line_subtotal", "line_discount", "line_tax", "line_total",
			"unit_cost", "margin_amount"),
		fees:        dataset.New("order_fees", "order_fee_id", "order_id", "platform_id", "fee_type", "fee_amount"),
		payments:    dataset.New("payments", "payment_id", "order_id", "payment_method", "provider_txn_id", "amount", "status"),
		shipments:   dataset.New("shipments", "shipment_id", "order_id", "carrier", "tracking_number", "shipped_at", "delivered_at", "delivery_status"),
		returns:     dataset.New("returns", "return_id", "order_id", "return_number", "status", "initiated_at"),
		returnItems: dataset.New("return_items", "return_item_id", "return_id", "order_item_id", "quantity_returned", "return_reason", "refund_amount"),
	}

	progress := NewProgressReporter("orders", "Generating orders", int64(g.cfg.Orders), g.cfg.ProgressInterval)
	span := int(orderEnd.Sub(orderStart) / time.Second)
	itemID := 1

	for oid := 1; oid <= g.cfg.Orders; oid++ {
		code := ChooseWeighted(f, platformCodes, []int{62, 18, 20})
		platformID := platformIndex(code)
		customerID := f.Int(1, g.cfg.Customers)
		placed := orderStart.Add(time.Duration(f.Int(0, span)) * time.Second)
		lines := Choose(f, []int{1, 1, 2, 2, 3})

		var subtotal, discount, tax float64
		shipping := Money(Choose(f, []float64{0, 2.99, 3.99, 4.99}))
		var placedLines []orderLine

		for ln := 1; ln <= lines; ln++ {
			p := Choose(f, c.items)
			qty := Choose(f, []int{1, 1, 1, 2, 2, 3})
			unitPrice := Money(p.discounted*platformPriceFactor[code] + float64(Choose(f, []int{0, 0, 0, 1})))
			ls := Money(unitPrice * float64(qty))
			ld := Money(ls * Choose(f, []float64{0, 0.05, 0.1, 0}))
			lt := Money((ls - ld) * 0.2)
			subtotal += ls
			discount += ld
			tax += lt

			s.items.Append(
				num(itemID), num(oid), num(ln), num(p.id),
				num(Choose(f, c.variantIDs[p.id])), num(listingID(p.id, platformID)),
				num(qty), flt(unitPrice), flt(ls), flt(ld), flt(lt), flt(Money(ls-ld+lt)),
				flt(p.unitCost), flt(Money(ls-ld-p.unitCost*float64(qty))),
			)
			placedLines = append(placedLines, orderLine{id: itemID, quantity: qty, unitPrice: unitPrice})
			itemID++
		}

		fee := Money((subtotal-discount)*platformFeePercent[code] + platformFlatFee[code])
		total := Money(subtotal - discount + tax + shipping)
		status := ChooseWeighted(f, orderStatuses, []int{5, 10, 72, 8, 5})
		fulfilled := status == "Shipped" || status == "Delivered" || status == "Returned"

		deliveryDays := null()
		days := 3
		if fulfilled {
			days = Choose(f, []int{2, 3, 3, 4, 5, 6})
			deliveryDays = num(days)
		}

		s.orders.Append(
			num(oid), txt(fmt.Sprintf("%d-AK-%06d", placed.Year(), oid)),
			tm(placed), txt(placed.Format(time.DateOnly)), txt(placed.Format(time.TimeOnly)),
			num(platformID), num(platformID), num(customerID), txt("GBP"),
			flt(Money(subtotal)), flt(Money(discount)), flt(Money(tax)), flt(shipping),
			flt(fee), flt(total), txt(status), deliveryDays,
		)
		s.fees.Append(num(s.fees.Len()+1), num(oid), num(platformID), txt("Platform"), flt(fee))

		method := "Card"
		if code != "WEBSITE" {
			method = ChooseWeighted(f, []string{"AmazonPay", "PayPal", "Card"}, []int{60, 20, 20})
		}
		paymentStatus := "Authorized"
		if fulfilled {
			paymentStatus = "Captured"
		}
		s.payments.Append(num(s.payments.Len()+1), num(oid), txt(method),
			txt(fmt.Sprintf("TXN%08d", oid)), flt(total), txt(paymentStatus))

		if fulfilled {
			shipID := s.shipments.Len() + 1
			shipped := placed.AddDate(0, 0, Choose(f, []int{0, 1, 1, 2}))
			delivered := shipped.AddDate(0, 0, days)
			deliveredAt := null()
			if status == "Delivered" || status == "Returned" {
				deliveredAt = tm(delivered)
			}
			deliveryStatus := "OnTime"
			if days > 4 {
				deliveryStatus = "Delayed"
			}
			s.shipments.Append(num(shipID), num(oid), txt(Choose(f, carriers)),
				txt(fmt.Sprintf("TRK%010d", shipID)), tm(shipped), deliveredAt, txt(deliveryStatus))

			if status == "Returned" || (status == "Delivered" && f.Chance(0.06)) {
				retID := s.returns.Len() + 1
				initiated := delivered.AddDate(0, 0, Choose(f, []int{2, 3, 5, 7}))
				s.returns.Append(num(retID), num(oid), txt(fmt.Sprintf("RET-%06d", oid)),
					txt(Choose(f, []string{"Initiated", "Received", "Refunded"})), tm(initiated))

				line := Choose(f, placedLines)
				qty := max(1, int(Round(float64(line.quantity)*Choose(f, []float64{0.5, 1}), 0)))
				s.returnItems.Append(num(s.returnItems.Len()+1), num(retID), num(line.id), num(qty),
					txt(Choose(f, []string{"Damaged", "Wrong Item", "Not as Described", "Changed Mind"})),
					flt(Money(float64(qty)*line.unitPrice)))
			}
		}
		progress.Update(1)
	}
	progress.Done()
	return s
}

func (g *Generator) reviews(c catalog) *dataset.Dataset {
	f := g.f
	ds := dataset.New("reviews",
		"review_id", "product_id", "variant_id", "source_platform", "user_id", "user_name",
		"review_title", "review_content", "rating")
	for rid := 1; rid <= g.cfg.Reviews; rid++ {
		p := Choose(f, c.items)
		rating := int(Clip(Round(f.Normal(p.rating, 0.8), 0), 1, 5))
		ds.Append(
			txt(fmt.Sprintf("R-%06d", rid)), num(p.id), null(),
			txt(ChooseWeighted(f, platformCodes, []int{70, 10, 20})),
			txt(fmt.Sprintf("U-%d", f.Int(10000, 99998))),
			txt(Choose(f, firstNames)+" "+Choose(f, lastNames)),
			txt(Choose(f, reviewTitles)),
			txt(Choose(f, reviewBodies)),
			num(rating),
		)
	}
	return ds
}

func (g *Generator) inventory(c catalog) (*dataset.Dataset, *dataset.Dataset) {
	f := g.f
	warehouses := dataset.New("warehouses", "warehouse_id", "warehouse_code", "warehouse_name", "city", "country")
	warehouses.Append(num(1), txt("GLA-DC"), txt("Glasgow DC"), txt("Glasgow"), txt("UK"))
	warehouses.Append(num(2), txt("BHM-DC"), txt("Birmingham DC"), txt("Birmingham"), txt("UK"))

	inv := dataset.New("inventory",
		"inventory_id", "variant_id", "warehouse_id", "on_hand_qty", "reserved_qty", "reorder_point", "safety_stock")
	for i, vid := range c.variants.Column("variant_id") {
		inv.Append(num(i+1), vid, num(f.Int(1, 2)),
			num(f.Int(0, 400)), num(f.Int(0, 20)), num(f.Int(5, 40)), num(f.Int(5, 30)))
	}
	return warehouses, inv
}

func platformIndex(code string) int {
	for i, c := range platformCodes {
		if c == code {
			return i + 1
		}
	}
	return 0
}

func slugify(s string) string {
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, s)
	return strings.Trim(out, "-")
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
