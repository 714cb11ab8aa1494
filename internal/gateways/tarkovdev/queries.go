package tarkovdev

const tasksQuery = `
query Tasks {
  tasks {
    id
    name
    kappaRequired
    lightkeeperRequired
    minPlayerLevel
    wikiLink
    requiredPrestige {
      prestigeLevel
    }
    trader {
      name
    }
    map {
      id
      name
      normalizedName
    }
    taskRequirements {
      task {
        id
        name
      }
      status
    }
    traderRequirements {
      id
      requirementType
      compareMethod
      value
      trader {
        name
      }
    }
    objectives {
      id
      type
      description
      maps {
        id
        name
        normalizedName
      }
      ... on TaskObjectiveItem {
        items {
          id
          name
          shortName
          iconLink
          wikiLink
        }
        count
        foundInRaid
        requiredKeys {
          id
          name
          shortName
        }
      }
      ... on TaskObjectiveBasic {
        requiredKeys {
          id
          name
          shortName
        }
      }
      ... on TaskObjectiveExtract {
        requiredKeys {
          id
          name
          shortName
        }
      }
      ... on TaskObjectiveMark {
        requiredKeys {
          id
          name
          shortName
        }
      }
    }
  }
}
`

const hideoutStationsQuery = `
query HideoutStations {
  hideoutStations {
    id
    name
    normalizedName
    levels {
      id
      level
      itemRequirements {
        count
        quantity
        attributes {
          type
          name
          value
        }
        item {
          id
          name
          shortName
          iconLink
          wikiLink
        }
      }
      stationLevelRequirements {
        id
        level
        station {
          id
          name
        }
      }
      skillRequirements {
        id
        name
        level
      }
      traderRequirements {
        id
        requirementType
        compareMethod
        value
        trader {
          name
        }
      }
    }
  }
}
`
