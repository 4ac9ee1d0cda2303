package graphql

const recordFields = `
      id
      date
      category
      subCategory
      duration
      location
      notes
      createdAt
      updatedAt`

const createPracticeLogDoc = `mutation CreatePracticeLog($input: CreatePracticeLogInput!) {
    createPracticeLog(input: $input) {` + recordFields + `
    }
  }`

const updatePracticeLogDoc = `mutation UpdatePracticeLog($input: UpdatePracticeLogInput!) {
    updatePracticeLog(input: $input) {` + recordFields + `
    }
  }`

const deletePracticeLogDoc = `mutation DeletePracticeLog($input: DeletePracticeLogInput!) {
    deletePracticeLog(input: $input) {
      id
    }
  }`

const getPracticeLogDoc = `query GetPracticeLog($id: ID!) {
    getPracticeLog(id: $id) {` + recordFields + `
    }
  }`

const listPracticeLogsDoc = `query ListPracticeLogs($filter: ModelPracticeLogFilterInput, $limit: Int, $nextToken: String) {
    listPracticeLogs(filter: $filter, limit: $limit, nextToken: $nextToken) {
      items {` + recordFields + `
      }
      nextToken
    }
  }`
