package catalog

// logicTypeTable lists every device logic parameter name accepted by l/s.
func logicTypeTable() []string {
	return []string{
		"Power", "Open", "Mode", "Error", "Lock", "Pressure", "Temperature",
		"PressureExternal", "PressureInternal", "Activate", "Charge", "Setting",
		"Reagents", "RatioOxygen", "RatioCarbonDioxide", "RatioNitrogen",
		"RatioPollutant", "RatioVolatiles", "RatioWater", "Horizontal",
		"Vertical", "SolarAngle", "Maximum", "Ratio", "PowerPotential",
		"PowerActual", "Quantity", "On", "ImportQuantity", "ImportSlotOccupant",
		"ExportQuantity", "ExportSlotOccupant", "RequiredPower",
		"HorizontalRatio", "VerticalRatio", "PowerRequired", "Idle", "Color",
		"ElevatorSpeed", "ElevatorLevel", "RecipeHash", "ExportSlotHash",
		"ImportSlotHash", "PlantHealth1", "PlantHealth2", "PlantHealth3",
		"PlantHealth4", "PlantGrowth1", "PlantGrowth2", "PlantGrowth3",
		"PlantGrowth4", "PlantEfficiency1", "PlantEfficiency2",
		"PlantEfficiency3", "PlantEfficiency4", "PlantHash1", "PlantHash2",
		"PlantHash3", "PlantHash4", "RequestHash", "CompletionRatio",
		"ClearMemory", "ExportCount", "ImportCount", "PowerGeneration",
		"TotalMoles", "Volume", "Plant", "Harvest", "Output",
		"PressureSetting", "TemperatureSetting", "TemperatureExternal",
		"Filtration", "AirRelease", "PositionX", "PositionY", "PositionZ",
		"VelocityMagnitude", "VelocityRelativeX", "VelocityRelativeY",
		"VelocityRelativeZ", "RatioNitrousOxide", "PrefabHash", "ForceWrite",
		"SignalStrength", "SignalID", "TargetX", "TargetY", "TargetZ",
		"SettingInput", "SettingOutput", "CurrentResearchPodType",
		"ManualResearchRequiredPod", "MineablesInVicinity", "MineablesInQueue",
		"NextWeatherEventTime", "Combustion", "Fuel", "ReturnFuelCost",
		"CollectableGoods", "Time", "Bpm", "EnvironmentEfficiency",
		"WorkingGasEfficiency", "PressureInput", "TemperatureInput",
		"RatioOxygenInput", "RatioCarbonDioxideInput", "RatioNitrogenInput",
		"RatioPollutantInput", "RatioVolatilesInput", "RatioWaterInput",
		"RatioNitrousOxideInput", "TotalMolesInput", "PressureInput2",
		"TemperatureInput2", "RatioOxygenInput2", "RatioCarbonDioxideInput2",
		"RatioNitrogenInput2", "RatioPollutantInput2", "RatioVolatilesInput2",
		"RatioWaterInput2", "RatioNitrousOxideInput2", "TotalMolesInput2",
		"PressureOutput", "TemperatureOutput", "RatioOxygenOutput",
		"RatioCarbonDioxideOutput", "RatioNitrogenOutput",
		"RatioPollutantOutput", "RatioVolatilesOutput", "RatioWaterOutput",
		"RatioNitrousOxideOutput", "TotalMolesOutput", "PressureOutput2",
		"TemperatureOutput2", "RatioOxygenOutput2", "RatioCarbonDioxideOutput2",
		"RatioNitrogenOutput2", "RatioPollutantOutput2",
		"RatioVolatilesOutput2", "RatioWaterOutput2",
		"RatioNitrousOxideOutput2", "TotalMolesOutput2", "CombustionInput",
		"CombustionInput2", "CombustionOutput", "CombustionOutput2",
		"OperationalTemperatureEfficiency",
		"TemperatureDifferentialEfficiency", "PressureEfficiency",
		"CombustionLimiter", "Throttle", "Rpm", "Stress",
		"InterrogationProgress", "TargetPadIndex", "SizeX", "SizeY", "SizeZ",
		"MinimumWattsToContact", "WattsReachingContact",
	}
}

// slotLogicTypeTable lists every slot logic parameter name accepted by ls.
func slotLogicTypeTable() []string {
	return []string{
		"Occupied", "OccupantHash", "Quantity", "Damage", "Efficiency",
		"Health", "Growth", "Pressure", "Temperature", "Charge", "ChargeRatio",
		"Class", "PressureWaste", "PressureAir", "MaxQuantity", "Mature",
		"PrefabHash", "Seeding",
	}
}
