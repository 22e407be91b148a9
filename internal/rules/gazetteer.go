package rules

// defaultGazetteer lists UK place names matched (as lowercase substrings)
// against extracted places: countries, counties, cities, London boroughs and
// well-known landmarks.
func defaultGazetteer() []string {
	return []string{
		// Countries and regions
		"united kingdom", "great britain", "britain", "england", "scotland",
		"wales", "northern ireland", "isle of man", "isle of wight",
		"channel islands", "jersey", "guernsey", "east anglia",
		"east midlands", "west midlands", "home counties", "the highlands",
		"scottish highlands", "scottish borders", "lake district",
		"peak district", "cotswolds", "snowdonia", "pennines", "dartmoor",
		"exmoor", "yorkshire dales", "north york moors",

		// English counties
		"bedfordshire", "berkshire", "buckinghamshire", "cambridgeshire",
		"cheshire", "cornwall", "county durham", "cumbria", "derbyshire",
		"devon", "dorset", "east sussex", "essex", "gloucestershire",
		"greater manchester", "hampshire", "herefordshire", "hertfordshire",
		"kent", "lancashire", "leicestershire", "lincolnshire", "merseyside",
		"norfolk", "northamptonshire", "northumberland", "nottinghamshire",
		"oxfordshire", "rutland", "shropshire", "somerset", "staffordshire",
		"suffolk", "surrey", "tyne and wear", "warwickshire", "west sussex",
		"wiltshire", "worcestershire", "north yorkshire", "south yorkshire",
		"west yorkshire", "east riding",

		// Welsh counties and areas
		"anglesey", "carmarthenshire", "ceredigion", "conwy", "denbighshire",
		"flintshire", "glamorgan", "gwynedd", "monmouthshire",
		"pembrokeshire", "powys", "rhondda",

		// Scottish council areas
		"aberdeenshire", "angus", "argyll", "ayrshire", "clackmannanshire",
		"dumfries", "galloway", "dunbartonshire", "east lothian", "fife",
		"lanarkshire", "midlothian", "moray", "orkney", "perthshire",
		"renfrewshire", "shetland", "stirlingshire", "west lothian",
		"western isles", "outer hebrides", "isle of skye",

		// Northern Irish counties
		"county antrim", "county armagh", "county down", "county fermanagh",
		"county londonderry", "county tyrone",

		// Major cities and towns
		"london", "birmingham", "manchester", "glasgow", "edinburgh",
		"liverpool", "leeds", "sheffield", "bristol", "newcastle",
		"newcastle upon tyne", "sunderland", "nottingham", "leicester",
		"coventry", "bradford", "cardiff", "swansea", "newport", "wrexham",
		"belfast", "derry", "londonderry", "lisburn", "aberdeen", "dundee",
		"inverness", "perth", "stirling", "southampton", "portsmouth",
		"brighton", "hove", "plymouth", "exeter", "truro", "bath",
		"gloucester", "cheltenham", "oxford", "cambridge", "norwich",
		"ipswich", "colchester", "chelmsford", "southend", "luton",
		"milton keynes", "northampton", "peterborough", "derby",
		"stoke-on-trent", "wolverhampton", "walsall", "dudley", "solihull",
		"hull", "kingston upon hull", "york", "harrogate", "middlesbrough",
		"darlington", "durham", "gateshead", "carlisle", "lancaster",
		"preston", "blackpool", "blackburn", "burnley", "bolton", "bury",
		"rochdale", "oldham", "stockport", "salford", "wigan", "warrington",
		"chester", "crewe", "telford", "shrewsbury", "worcester", "hereford",
		"reading", "slough", "windsor", "guildford", "woking", "crawley",
		"eastbourne", "hastings", "canterbury", "maidstone", "dover",
		"folkestone", "gillingham", "rochester", "dartford", "watford",
		"st albans", "stevenage", "basildon", "romford", "bournemouth",
		"poole", "swindon", "salisbury", "winchester", "basingstoke",
		"taunton", "yeovil", "weston-super-mare", "torquay", "paignton",
		"barnsley", "doncaster", "rotherham", "wakefield", "huddersfield",
		"halifax", "scunthorpe", "grimsby", "lincoln", "mansfield",
		"chesterfield", "loughborough", "rugby", "nuneaton", "redditch",
		"kidderminster", "stafford", "burton upon trent", "macclesfield",
		"birkenhead", "st helens", "southport", "bangor", "aberystwyth",
		"llandudno", "merthyr tydfil", "bridgend", "barry", "caerphilly",
		"cwmbran", "falkirk", "kilmarnock", "ayr", "paisley", "greenock",
		"hamilton", "motherwell", "east kilbride", "livingston",
		"dunfermline", "kirkcaldy", "elgin", "fort william", "oban",
		"newry", "armagh", "omagh", "enniskillen", "coleraine", "ballymena",

		// London boroughs and districts
		"westminster", "city of london", "camden", "islington", "hackney",
		"tower hamlets", "greenwich", "lewisham", "southwark", "lambeth",
		"wandsworth", "hammersmith", "fulham", "kensington", "chelsea",
		"brent", "ealing", "hounslow", "richmond upon thames",
		"kingston upon thames", "merton", "sutton", "croydon", "bromley",
		"bexley", "havering", "redbridge", "newham", "barking", "dagenham",
		"waltham forest", "haringey", "enfield", "barnet", "harrow",
		"hillingdon", "soho", "mayfair", "shoreditch", "brixton", "peckham",
		"clapham", "stratford", "wembley", "wimbledon", "notting hill",
		"canary wharf", "docklands",

		// Landmarks and institutions
		"downing street", "whitehall", "houses of parliament", "big ben",
		"buckingham palace", "windsor castle", "balmoral", "holyrood",
		"stormont", "the senedd", "trafalgar square", "piccadilly circus",
		"tower bridge", "london bridge", "the shard", "hyde park",
		"regent's park", "hampstead heath", "heathrow", "gatwick",
		"stansted", "old trafford", "anfield", "wembley stadium",
		"twickenham", "murrayfield", "lords cricket ground", "the oval",
		"silverstone", "ascot", "aintree", "cheltenham racecourse",
		"stonehenge", "hadrian's wall", "loch ness", "ben nevis",
		"giant's causeway", "land's end", "john o'groats", "the wash",
		"river thames", "river mersey", "river severn", "river clyde",
		"river tyne",
	}
}
