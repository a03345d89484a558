package catalog

import (
	"strings"

	"shopfront/internal/domain"
)

// TagVocabulary is the fixed pool product tags are drawn from.
var TagVocabulary = []string{
	"featured", "bestseller", "new", "sale", "limited",
	"trending", "premium", "eco-friendly", "gift-idea", "exclusive",
}

func pool(slug string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "https://images.shopfront.test/" + slug + "/" + string(rune('a'+i)) + ".jpg"
	}
	return out
}

var templates = []domain.CategoryTemplate{
	{
		Key:           "laptops",
		Name:          "Laptops",
		Subcategories: []string{"Ultrabooks", "Gaming Laptops", "Business Laptops", "2-in-1 Laptops"},
		Brands:        []string{"Apple", "Dell", "Lenovo", "HP", "ASUS", "Acer"},
		Models:        []string{"ProBook", "ZenBook", "ThinkPad", "XPS", "Swift", "Spectre", "Inspiron"},
		Variants:      []string{"13", "14", "15", "16", "Pro", "Air", "Plus"},
		SpecFields: []domain.SpecField{
			{Name: "Processor", Values: []string{"Intel Core i5", "Intel Core i7", "Intel Core i9", "AMD Ryzen 5", "AMD Ryzen 7", "Apple M3"}},
			{Name: "RAM", Values: []string{"8GB", "16GB", "32GB", "64GB"}},
			{Name: "Storage", Values: []string{"256GB SSD", "512GB SSD", "1TB SSD", "2TB SSD"}},
			{Name: "Display", Values: []string{"13.3\" FHD", "14\" 2.8K OLED", "15.6\" FHD", "16\" QHD+"}},
			{Name: "Battery", Values: []string{"Up to 8 hours", "Up to 12 hours", "Up to 18 hours"}},
		},
		Band:      domain.PriceBand{Min: 499, Max: 3499},
		ImagePool: pool("laptops", 8),
		Blurbs: []string{
			"Built for long workdays and late-night projects.",
			"A slim chassis with a keyboard you will actually enjoy typing on.",
			"Serious performance that still fits in a backpack.",
		},
	},
	{
		Key:           "smartphones",
		Name:          "Smartphones",
		Subcategories: []string{"Flagship", "Mid-range", "Budget", "Foldable"},
		Brands:        []string{"Apple", "Samsung", "Google", "OnePlus", "Xiaomi", "Motorola"},
		Models:        []string{"Galaxy", "Pixel", "iPhone", "Nord", "Edge", "Redmi"},
		Variants:      []string{"Lite", "Pro", "Ultra", "Max", "Mini"},
		SpecFields: []domain.SpecField{
			{Name: "Screen Size", Values: []string{"6.1\"", "6.4\"", "6.7\"", "6.8\""}},
			{Name: "Storage", Values: []string{"128GB", "256GB", "512GB", "1TB"}},
			{Name: "Camera", Values: []string{"48MP", "50MP", "108MP", "200MP"}},
			{Name: "Battery", Values: []string{"4000mAh", "4500mAh", "5000mAh"}},
			{Name: "Network", Values: []string{"4G LTE", "5G"}},
		},
		Band:      domain.PriceBand{Min: 149, Max: 1799},
		ImagePool: pool("smartphones", 8),
		Blurbs: []string{
			"A camera that keeps up with every moment.",
			"All-day battery and a display that pops outdoors.",
			"Fast, responsive and ready for whatever you throw at it.",
		},
	},
	{
		Key:           "tablets",
		Name:          "Tablets",
		Subcategories: []string{"Productivity", "Entertainment", "Kids", "Drawing"},
		Brands:        []string{"Apple", "Samsung", "Lenovo", "Amazon", "Microsoft"},
		Models:        []string{"iPad", "Galaxy Tab", "Tab P", "Fire HD", "Surface Go"},
		Variants:      []string{"Air", "Pro", "Mini", "Plus", "S"},
		SpecFields: []domain.SpecField{
			{Name: "Screen Size", Values: []string{"8\"", "10.1\"", "11\"", "12.9\""}},
			{Name: "Storage", Values: []string{"64GB", "128GB", "256GB", "512GB"}},
			{Name: "Connectivity", Values: []string{"Wi-Fi", "Wi-Fi + Cellular"}},
			{Name: "Stylus Support", Values: []string{"Yes", "No"}},
		},
		Band:      domain.PriceBand{Min: 99, Max: 1299},
		ImagePool: pool("tablets", 6),
		Blurbs: []string{
			"A big, bright canvas for reading, sketching and streaming.",
			"Light enough to carry everywhere, powerful enough to replace a laptop.",
		},
	},
	{
		Key:           "headphones",
		Name:          "Headphones",
		Subcategories: []string{"Over-ear", "In-ear", "On-ear", "True Wireless"},
		Brands:        []string{"Sony", "Bose", "Sennheiser", "Apple", "JBL", "Audio-Technica"},
		Models:        []string{"WH-1000", "QuietComfort", "Momentum", "AirPods", "Tune", "ATH-M"},
		Variants:      []string{"II", "III", "X", "Pro", "Sport"},
		SpecFields: []domain.SpecField{
			{Name: "Noise Cancelling", Values: []string{"Active", "Passive", "None"}},
			{Name: "Battery Life", Values: []string{"20 hours", "30 hours", "40 hours"}},
			{Name: "Connectivity", Values: []string{"Bluetooth 5.0", "Bluetooth 5.3", "Wired 3.5mm"}},
			{Name: "Driver Size", Values: []string{"10mm", "30mm", "40mm", "50mm"}},
		},
		Band:      domain.PriceBand{Min: 29, Max: 549},
		ImagePool: pool("headphones", 7),
		Blurbs: []string{
			"Rich, detailed sound with deep, controlled bass.",
			"Comfortable enough for long flights and longer playlists.",
		},
	},
	{
		Key:           "cameras",
		Name:          "Cameras",
		Subcategories: []string{"Mirrorless", "DSLR", "Action", "Instant"},
		Brands:        []string{"Canon", "Nikon", "Sony", "Fujifilm", "GoPro", "Panasonic"},
		Models:        []string{"EOS", "Z", "Alpha", "X-T", "HERO", "Lumix"},
		Variants:      []string{"R5", "R6", "50", "7 IV", "Mark II"},
		SpecFields: []domain.SpecField{
			{Name: "Sensor", Values: []string{"APS-C", "Full Frame", "Micro Four Thirds", "1\""}},
			{Name: "Resolution", Values: []string{"20MP", "24MP", "33MP", "45MP"}},
			{Name: "Video", Values: []string{"1080p", "4K 30fps", "4K 60fps", "8K"}},
			{Name: "Stabilization", Values: []string{"In-body", "Lens-based", "Electronic"}},
		},
		Band:      domain.PriceBand{Min: 199, Max: 3999},
		ImagePool: pool("cameras", 8),
		Blurbs: []string{
			"Sharp images and fast autofocus for every subject.",
			"Pro-grade video in a body you will want to carry.",
		},
	},
	{
		Key:           "smartwatches",
		Name:          "Smartwatches",
		Subcategories: []string{"Fitness", "Luxury", "Kids", "Outdoor"},
		Brands:        []string{"Apple", "Samsung", "Garmin", "Fitbit", "Amazfit"},
		Models:        []string{"Watch", "Galaxy Watch", "Forerunner", "Versa", "GTR"},
		Variants:      []string{"SE", "Ultra", "Classic", "Active", "2"},
		SpecFields: []domain.SpecField{
			{Name: "Case Size", Values: []string{"40mm", "42mm", "44mm", "46mm"}},
			{Name: "Battery Life", Values: []string{"1 day", "3 days", "7 days", "14 days"}},
			{Name: "Water Resistance", Values: []string{"IP68", "5ATM", "10ATM"}},
			{Name: "GPS", Values: []string{"Built-in", "Connected"}},
		},
		Band:      domain.PriceBand{Min: 49, Max: 899},
		ImagePool: pool("smartwatches", 6),
		Blurbs: []string{
			"Track workouts, sleep and notifications at a glance.",
			"A durable companion for training and everyday wear.",
		},
	},
	{
		Key:           "gaming",
		Name:          "Gaming",
		Subcategories: []string{"Consoles", "Controllers", "Headsets", "Keyboards"},
		Brands:        []string{"Sony", "Microsoft", "Nintendo", "Razer", "Logitech", "SteelSeries"},
		Models:        []string{"PlayStation", "Xbox", "Switch", "BlackWidow", "G Pro", "Arctis"},
		Variants:      []string{"5", "Series X", "OLED", "V4", "Wireless"},
		SpecFields: []domain.SpecField{
			{Name: "Platform", Values: []string{"PC", "PlayStation", "Xbox", "Nintendo Switch", "Multi-platform"}},
			{Name: "Connectivity", Values: []string{"Wired", "Wireless", "Bluetooth"}},
			{Name: "RGB Lighting", Values: []string{"Yes", "No"}},
		},
		Band:      domain.PriceBand{Min: 19, Max: 699},
		ImagePool: pool("gaming", 8),
		Blurbs: []string{
			"Low latency and precise control when it matters.",
			"Level up your setup with gear built for marathon sessions.",
		},
	},
	{
		Key:           "home-audio",
		Name:          "Home Audio",
		Subcategories: []string{"Soundbars", "Bookshelf Speakers", "Smart Speakers", "Turntables"},
		Brands:        []string{"Sonos", "Bose", "Yamaha", "Denon", "Klipsch", "Marshall"},
		Models:        []string{"Beam", "Era", "SoundTouch", "MusicCast", "Reference", "Stanmore"},
		Variants:      []string{"100", "300", "Gen 2", "III", "Mini"},
		SpecFields: []domain.SpecField{
			{Name: "Output Power", Values: []string{"50W", "100W", "200W", "400W"}},
			{Name: "Connectivity", Values: []string{"Wi-Fi", "Bluetooth", "HDMI eARC", "Optical"}},
			{Name: "Voice Assistant", Values: []string{"Alexa", "Google Assistant", "None"}},
		},
		Band:      domain.PriceBand{Min: 79, Max: 1999},
		ImagePool: pool("home-audio", 6),
		Blurbs: []string{
			"Room-filling sound with crisp dialogue.",
			"Warm, natural audio that makes every record sound new.",
		},
	},
	{
		Key:           "accessories",
		Name:          "Accessories",
		Subcategories: []string{"Chargers", "Cables", "Cases", "Power Banks"},
		Brands:        []string{"Anker", "Belkin", "Spigen", "UGREEN", "Mophie"},
		Models:        []string{"PowerCore", "BoostCharge", "Tough Armor", "Nexode", "Juice Pack"},
		Variants:      []string{"20W", "65W", "10000", "Slim", "MagSafe"},
		SpecFields: []domain.SpecField{
			{Name: "Compatibility", Values: []string{"USB-C", "Lightning", "Universal", "MagSafe"}},
			{Name: "Color", Values: []string{"Black", "White", "Blue", "Clear"}},
			{Name: "Material", Values: []string{"Silicone", "Aluminum", "Braided Nylon", "Polycarbonate"}},
		},
		Band:      domain.PriceBand{Min: 9, Max: 149},
		ImagePool: pool("accessories", 6),
		Blurbs: []string{
			"The small upgrade your everyday carry has been missing.",
			"Reliable, tested and built to last.",
		},
	},
}

// Templates returns copies of the built-in category templates in bucketing order.
func Templates() []domain.CategoryTemplate {
	out := make([]domain.CategoryTemplate, len(templates))
	copy(out, templates)
	return out
}

// Template looks a template up by key or display name, case-insensitively.
func Template(key string) (domain.CategoryTemplate, bool) {
	for _, t := range templates {
		if strings.EqualFold(t.Key, key) || strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return domain.CategoryTemplate{}, false
}
