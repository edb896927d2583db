package common

// All units are in metric:
// - Distance is in meters
// - Time is in seconds

const ElevationOfEverest = 8848.0
const ElevationOfTroposphere = 11000.0
const ElevationOfDeadSea = -430.0
