package domain

type Table string

const (
	TableListings          Table = "listings"
	TableListingCounters   Table = "listing_counters"
	TableListingActivities Table = "listing_activities"

	TableAssetRegistries    Table = "asset_registries"
	TableFungibleBalances   Table = "fungible_balances"
	TableFungibleAllowances Table = "fungible_allowances"
	TableNonFungibleOwners  Table = "nonfungible_owners"
	TableNonFungibleGrants  Table = "nonfungible_grants"
)
