package census

import "github.com/sells-group/zipcensus/internal/model"

// ZCTAHeader is the geography column the API returns for ZIP code
// tabulation area queries.
const ZCTAHeader = "zip code tabulation area"

// Variables lists the ACS variables requested for every ZIP, in request order.
var Variables = []string{
	"B01003_001E", "B19013_001E", "B01002_001E",
	"B15003_001E", "B17001_002E", "B02001_002E", "B02001_003E", "B02001_005E", "B03002_012E",
	"B23025_003E", "B23025_005E", "B15003_017E", "B25077_001E", "B25003_002E", "B25003_003E",
	"B19001_001E", "B19001_002E", "B19001_017E", "B01001_001E", "B01001_020E", "B01001_044E",
}

// Labels maps API header tokens to human-readable column names.
var Labels = map[string]string{
	"B01003_001E": "Total Population",
	"B19013_001E": "Median Household Income",
	"B01002_001E": "Median Age",
	"B15003_001E": "Total Population Aged 25 and Over",
	"B15003_017E": "Bachelor's Degree or Higher",
	"B17001_002E": "Population Below Poverty Level",
	"B02001_002E": "White Population",
	"B02001_003E": "Black or African American Population",
	"B02001_005E": "Asian Population",
	"B03002_012E": "Hispanic or Latino Population",
	"B23025_003E": "Employed Population",
	"B23025_005E": "Unemployed Population",
	"B25077_001E": "Median Home Value",
	"B25003_002E": "Owner-Occupied Housing Units",
	"B25003_003E": "Renter-Occupied Housing Units",
	"B19001_001E": "Total Households",
	"B19001_002E": "Households Earning Less Than $10,000",
	"B19001_017E": "Households Earning More Than $200,000",
	"B01001_001E": "Total Population by Age",
	"B01001_020E": "Male Population Aged 25 to 29",
	"B01001_044E": "Female Population Aged 65 and Over",
	ZCTAHeader:    model.ZIPCodeColumn,
}

// Label translates a header token. Unknown tokens pass through unchanged.
func Label(token string) string {
	if l, ok := Labels[token]; ok {
		return l
	}
	return token
}
