package domain

// CatalogEntry is one configurable price row in the services view.
// Key is the notary_admin_settings row the price is stored under.
type CatalogEntry struct {
	Key  string `json:"key"`
	Code string `json:"code"`
	Name string `json:"name"`
	Hint string `json:"hint"`
}

// NotaryServiceCatalog is the fixed notary translation catalog.
var NotaryServiceCatalog = []CatalogEntry{
	{Key: "price_id_card", Code: "ID_CARD", Name: "身份证/护照", Hint: "身份证、护照等证件翻译公证"},
	{Key: "price_birth_marriage", Code: "BIRTH_MARRIAGE", Name: "出生证/结婚证", Hint: "出生证明、结婚证、离婚证等"},
	{Key: "price_education", Code: "EDUCATION", Name: "成绩单/毕业证", Hint: "学历证明、成绩单、毕业证等"},
	{Key: "price_criminal_record", Code: "CRIMINAL_RECORD", Name: "无犯罪证明", Hint: "无犯罪记录证明翻译公证"},
	{Key: "price_other_base", Code: "OTHER", Name: "其他类型", Hint: "自定义类型的基础价格"},
}

// VisaServiceCatalog is the fixed visa catalog. Prices are advisory:
// visa order amounts are settled off-system.
var VisaServiceCatalog = []CatalogEntry{
	{Key: "price_visa_b2", Code: "B2", Name: "B2 商务签证", Hint: "短期商务考察、会议洽谈，停留30–90天"},
	{Key: "price_visa_c3", Code: "C3", Name: "C3 劳务签证", Hint: "在哈合法就业的外籍员工签证，配合劳动合同"},
	{Key: "price_visa_c5", Code: "C5", Name: "C5 投资签证", Hint: "投资人及企业高管签证，有投资项目或注册公司"},
	{Key: "price_visa_c1", Code: "C1", Name: "C1 哈萨克居留", Hint: "长期居留许可，可合法工作或经商"},
	{Key: "price_visa_b18", Code: "B18", Name: "B18 出境签", Hint: "一次性出境签证，适用于需合法离境的外国人"},
	{Key: "price_visa_b12", Code: "B12", Name: "B12 旅游签", Hint: "短期旅游观光，单次停留一般不超过30天"},
}

// ExtraFeeCatalog holds the add-on fees.
var ExtraFeeCatalog = []CatalogEntry{
	{Key: "urgent_fee", Name: "加急费用"},
	{Key: "delivery_fee_physical", Name: "纸质版配送费"},
}

var basePriceKeys = map[ServiceType]string{
	ServiceIDCard:         "price_id_card",
	ServiceBirthMarriage:  "price_birth_marriage",
	ServiceEducation:      "price_education",
	ServiceCriminalRecord: "price_criminal_record",
	ServiceOther:          "price_other_base",
}

// BasePriceKey maps a translation service type to the settings key its
// suggested base price is stored under. Unknown types fall back to the
// OTHER base price.
func BasePriceKey(t ServiceType) string {
	if key, ok := basePriceKeys[t]; ok {
		return key
	}
	return "price_other_base"
}

// Well-known settings keys.
const (
	SettingAdminPassword  = "admin_password"
	SettingCurrencySymbol = "currency_symbol"
)

// DefaultCurrencySymbol is the tenge sign used until the stored symbol
// is read.
const DefaultCurrencySymbol = "₸"
