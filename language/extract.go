package language

import (
	"sort"
	"strings"
)

// DefaultLocation is used when no known place name appears in the text.
const DefaultLocation = "Mumbai"

// DefaultCrop is used when no known crop appears in the text.
const DefaultCrop = "general"

var locationTable = map[string]string{
	"mumbai": "Mumbai", "delhi": "Delhi", "bangalore": "Bangalore",
	"chennai": "Chennai", "kolkata": "Kolkata", "hyderabad": "Hyderabad",
	"pune": "Pune", "ahmedabad": "Ahmedabad", "jaipur": "Jaipur",
	"lucknow": "Lucknow", "patna": "Patna", "bhopal": "Bhopal",
	"chandigarh": "Chandigarh", "guwahati": "Guwahati", "shillong": "Shillong",
	"imphal": "Imphal", "aizawl": "Aizawl", "kohima": "Kohima",
	"itanagar": "Itanagar", "gangtok": "Gangtok", "agartala": "Agartala",
	"dispur": "Dispur", "shimla": "Shimla", "dehradun": "Dehradun",
	"srinagar": "Srinagar", "leh": "Leh", "port blair": "Port Blair",
	"kavaratti": "Kavaratti", "daman": "Daman", "diu": "Diu",
	"panaji": "Panaji", "silvassa": "Silvassa", "puducherry": "Puducherry",
	"karnataka": "Karnataka", "maharashtra": "Maharashtra",
	"tamil nadu": "Tamil Nadu", "andhra pradesh": "Andhra Pradesh",
	"telangana": "Telangana", "kerala": "Kerala", "gujarat": "Gujarat",
	"rajasthan": "Rajasthan", "madhya pradesh": "Madhya Pradesh",
	"uttar pradesh": "Uttar Pradesh", "bihar": "Bihar",
	"west bengal": "West Bengal", "odisha": "Odisha", "jharkhand": "Jharkhand",
	"chhattisgarh": "Chhattisgarh", "himachal pradesh": "Himachal Pradesh",
	"uttarakhand": "Uttarakhand", "punjab": "Punjab", "haryana": "Haryana",
	"assam": "Assam", "manipur": "Manipur", "meghalaya": "Meghalaya",
	"mizoram": "Mizoram", "nagaland": "Nagaland",
	"arunachal pradesh": "Arunachal Pradesh", "sikkim": "Sikkim",
	"tripura": "Tripura", "goa": "Goa",
	"jammu and kashmir": "Jammu and Kashmir", "ladakh": "Ladakh",
	"andaman and nicobar": "Andaman and Nicobar", "lakshadweep": "Lakshadweep",
	"dadra and nagar haveli": "Dadra and Nagar Haveli",
	"daman and diu": "Daman and Diu",
}

var cropTable = map[string]string{
	"rice": "Rice", "wheat": "Wheat", "maize": "Maize", "cotton": "Cotton",
	"sugarcane": "Sugarcane", "pulses": "Pulses", "oilseeds": "Oilseeds",
	"vegetables": "Vegetables", "fruits": "Fruits", "spices": "Spices",
	"चावल": "Rice", "गेहूं": "Wheat", "मक्का": "Maize", "कपास": "Cotton",
	"गन्ना": "Sugarcane", "दालें": "Pulses", "तिलहन": "Oilseeds",
	"सब्जियां": "Vegetables", "फल": "Fruits", "मसाले": "Spices",
}

// Longest key first, so "daman and diu" wins over "daman" and the result is
// independent of map iteration order.
func orderedKeys(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

var (
	locationKeys = orderedKeys(locationTable)
	cropKeys     = orderedKeys(cropTable)
)

// ExtractLocation finds the first known place name in the text, preferring
// the most specific match, and falls back to DefaultLocation.
func ExtractLocation(text string) string {
	lower := strings.ToLower(text)
	for _, key := range locationKeys {
		if strings.Contains(lower, key) {
			return locationTable[key]
		}
	}
	return DefaultLocation
}

// ExtractCrop finds the first known crop name in the text, preferring the
// most specific match, and falls back to DefaultCrop.
func ExtractCrop(text string) string {
	lower := strings.ToLower(text)
	for _, key := range cropKeys {
		if strings.Contains(lower, key) {
			return cropTable[key]
		}
	}
	return DefaultCrop
}
